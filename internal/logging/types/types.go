// Package types holds the logging contracts shared by the logger and
// its output adapters, kept separate to avoid an import cycle between
// them.
package types

import (
	"context"
	"time"
)

// LogLevel is the severity of a log entry. Levels order from Debug up;
// an entry below the logger's configured level is dropped before it
// reaches any adapter.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelNames = [...]string{"debug", "info", "warn", "error", "fatal"}

func (l LogLevel) String() string {
	if l < DebugLevel || l > FatalLevel {
		return "info"
	}
	return levelNames[l]
}

// LogEntry is a single record handed to every registered adapter.
type LogEntry struct {
	Level     LogLevel               `json:"level"`
	Message   string                 `json:"message"`
	Timestamp time.Time              `json:"timestamp"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Context   context.Context        `json:"-"`
}

// LogAdapter is an output destination for log entries. Adapters must
// tolerate concurrent Write calls.
type LogAdapter interface {
	Write(entry *LogEntry) error
	Close() error
	Health() error
	Name() string
}

// Logger is the logging surface the rest of the service depends on.
type Logger interface {
	Debug(message string, fields ...map[string]interface{})
	Info(message string, fields ...map[string]interface{})
	Warn(message string, fields ...map[string]interface{})
	Error(message string, fields ...map[string]interface{})
	Fatal(message string, fields ...map[string]interface{})

	WithContext(ctx context.Context) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger

	Log(level LogLevel, message string, fields ...map[string]interface{})

	SetLevel(level LogLevel)
	GetLevel() LogLevel

	AddAdapter(adapter LogAdapter) error
	RemoveAdapter(adapterName string) error

	Close() error
}

// AdapterConfig is the per-adapter block of the logging configuration.
type AdapterConfig struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}
