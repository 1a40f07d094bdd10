package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"talentboard/internal/logging/types"
)

// Aliases so callers import only this package.
type (
	LogLevel      = types.LogLevel
	LogEntry      = types.LogEntry
	LogAdapter    = types.LogAdapter
	Logger        = types.Logger
	AdapterConfig = types.AdapterConfig
)

const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)

// MultiLogger fans each entry out to every registered adapter. The
// With* methods derive child loggers that share the adapter set but
// carry their own bound fields and context.
type MultiLogger struct {
	adapters map[string]types.LogAdapter
	level    LogLevel
	context  context.Context
	fields   map[string]interface{}
	mu       sync.RWMutex
}

// NewMultiLogger creates an empty logger at Info level. Entries written
// before the first adapter is added are dropped.
func NewMultiLogger() *MultiLogger {
	return &MultiLogger{
		adapters: make(map[string]types.LogAdapter),
		level:    InfoLevel,
		context:  context.Background(),
		fields:   make(map[string]interface{}),
	}
}

func (l *MultiLogger) Debug(message string, fields ...map[string]interface{}) {
	l.Log(DebugLevel, message, fields...)
}

func (l *MultiLogger) Info(message string, fields ...map[string]interface{}) {
	l.Log(InfoLevel, message, fields...)
}

func (l *MultiLogger) Warn(message string, fields ...map[string]interface{}) {
	l.Log(WarnLevel, message, fields...)
}

func (l *MultiLogger) Error(message string, fields ...map[string]interface{}) {
	l.Log(ErrorLevel, message, fields...)
}

// Fatal logs the entry, closes all adapters and exits the process.
func (l *MultiLogger) Fatal(message string, fields ...map[string]interface{}) {
	l.Log(FatalLevel, message, fields...)
	l.Close()
	os.Exit(1)
}

// Log writes one entry to every adapter. A failing adapter reports to
// stderr rather than back through the logger.
func (l *MultiLogger) Log(level LogLevel, message string, fields ...map[string]interface{}) {
	if level < l.GetLevel() {
		return
	}

	entry := &types.LogEntry{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
		Context:   l.context,
		Fields:    l.boundFields(fields...),
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for name, adapter := range l.adapters {
		if err := adapter.Write(entry); err != nil {
			fmt.Fprintf(os.Stderr, "logging adapter %s error: %v\n", name, err)
		}
	}
}

func (l *MultiLogger) WithContext(ctx context.Context) Logger {
	child := l.child()
	child.context = ctx
	return child
}

func (l *MultiLogger) WithField(key string, value interface{}) Logger {
	child := l.child()
	child.fields[key] = value
	return child
}

func (l *MultiLogger) WithFields(fields map[string]interface{}) Logger {
	child := l.child()
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

// SetLevel sets the minimum level an entry needs to be written.
func (l *MultiLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum level.
func (l *MultiLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// AddAdapter registers an adapter under its name. Names are unique.
func (l *MultiLogger) AddAdapter(adapter types.LogAdapter) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := adapter.Name()
	if _, exists := l.adapters[name]; exists {
		return fmt.Errorf("adapter %s already registered", name)
	}

	l.adapters[name] = adapter
	return nil
}

// RemoveAdapter closes and unregisters an adapter by name.
func (l *MultiLogger) RemoveAdapter(adapterName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	adapter, exists := l.adapters[adapterName]
	if !exists {
		return fmt.Errorf("adapter %s not registered", adapterName)
	}

	if err := adapter.Close(); err != nil {
		return fmt.Errorf("close adapter %s: %w", adapterName, err)
	}

	delete(l.adapters, adapterName)
	return nil
}

// Close closes every adapter, collecting failures into one error.
func (l *MultiLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var failures []string
	for name, adapter := range l.adapters {
		if err := adapter.Close(); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("close adapters: %s", strings.Join(failures, "; "))
	}
	return nil
}

// child clones the logger sharing the adapter map but with its own
// field set, so derived loggers never mutate the parent.
func (l *MultiLogger) child() *MultiLogger {
	fields := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}

	return &MultiLogger{
		adapters: l.adapters,
		level:    l.level,
		context:  l.context,
		fields:   fields,
	}
}

// boundFields merges the logger's bound fields with per-call field maps,
// later maps winning on key collisions.
func (l *MultiLogger) boundFields(extra ...map[string]interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	for _, m := range extra {
		for k, v := range m {
			fields[k] = v
		}
	}
	return fields
}

// ParseLogLevel maps a configuration string to a LogLevel, defaulting
// to Info for unknown values.
func ParseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
