package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"talentboard/internal/logging/types"
)

// StdoutConfig configures the stdout adapter.
type StdoutConfig struct {
	Format    string `yaml:"format"`    // json or text
	Colorized bool   `yaml:"colorized"` // enable colored output
}

// StdoutAdapter writes log entries to standard output, one line per
// entry. Field keys are emitted in sorted order so text output is
// stable across runs.
type StdoutAdapter struct {
	name      string
	format    string
	colorized bool
	out       io.Writer
	mu        sync.Mutex
}

// NewStdoutAdapter creates a new stdout adapter
func NewStdoutAdapter(name string, config StdoutConfig) *StdoutAdapter {
	return &StdoutAdapter{
		name:      name,
		format:    strings.ToLower(config.Format),
		colorized: config.Colorized,
		out:       os.Stdout,
	}
}

// Write encodes and prints a single log entry.
func (a *StdoutAdapter) Write(entry *types.LogEntry) error {
	var line string
	var err error

	if a.format == "text" {
		line = a.encodeText(entry)
	} else {
		line, err = a.encodeJSON(entry)
		if err != nil {
			return fmt.Errorf("encode log entry: %w", err)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err = fmt.Fprintln(a.out, line)
	return err
}

// Close is a no-op; the adapter does not own stdout.
func (a *StdoutAdapter) Close() error {
	return nil
}

// Health always reports healthy.
func (a *StdoutAdapter) Health() error {
	return nil
}

// Name returns the name of the adapter
func (a *StdoutAdapter) Name() string {
	return a.name
}

func (a *StdoutAdapter) encodeJSON(entry *types.LogEntry) (string, error) {
	record := make(map[string]interface{}, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		record[k] = v
	}
	record["level"] = entry.Level.String()
	record["message"] = entry.Message
	record["time"] = entry.Timestamp.Format(time.RFC3339)

	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *StdoutAdapter) encodeText(entry *types.LogEntry) string {
	level := strings.ToUpper(entry.Level.String())
	if a.colorized {
		level = colorize(entry.Level, level)
	}

	var sb strings.Builder
	sb.WriteString(entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"))
	sb.WriteString(" [")
	sb.WriteString(level)
	sb.WriteString("] ")
	sb.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf(" %s=%v", k, entry.Fields[k]))
		}
	}

	return sb.String()
}

// colorize wraps a level label in an ANSI color escape.
func colorize(level types.LogLevel, label string) string {
	const reset = "\033[0m"

	switch level {
	case types.DebugLevel:
		return "\033[90m" + label + reset
	case types.WarnLevel:
		return "\033[33m" + label + reset
	case types.ErrorLevel, types.FatalLevel:
		return "\033[31m" + label + reset
	default:
		return "\033[34m" + label + reset
	}
}
