package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"talentboard/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for file output
type FileAdapter struct {
	name        string
	filePath    string
	format      string
	maxSize     int64
	syncOnWrite bool
	file        *os.File
	written     int64
	mu          sync.Mutex
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath    string `yaml:"file_path"`
	Format      string `yaml:"format"`        // json or text
	MaxSize     int64  `yaml:"max_size"`      // bytes before rotation, 0 disables
	CreateDirs  bool   `yaml:"create_dirs"`   // create parent directories
	SyncOnWrite bool   `yaml:"sync_on_write"` // fsync after every entry
}

// NewFileAdapter creates a new file adapter
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("file_path is required for file adapter")
	}

	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &FileAdapter{
		name:        name,
		filePath:    config.FilePath,
		format:      config.Format,
		maxSize:     config.MaxSize,
		syncOnWrite: config.SyncOnWrite,
		file:        file,
		written:     info.Size(),
	}, nil
}

// Write writes a log entry to the file, rotating first if the size cap is hit
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("file adapter %s is closed", a.name)
	}

	var line string
	var err error

	switch strings.ToLower(a.format) {
	case "text":
		line, err = a.formatText(entry)
	default:
		line, err = a.formatJSON(entry)
	}
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	if a.maxSize > 0 && a.written+int64(len(line))+1 > a.maxSize {
		if err := a.rotate(); err != nil {
			return err
		}
	}

	n, err := fmt.Fprintln(a.file, line)
	if err != nil {
		return err
	}
	a.written += int64(n)

	if a.syncOnWrite {
		return a.file.Sync()
	}
	return nil
}

// rotate renames the current file with a timestamp suffix and reopens
func (a *FileAdapter) rotate() error {
	if err := a.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file for rotation: %w", err)
	}

	rotated := fmt.Sprintf("%s.%s", a.filePath, time.Now().Format("20060102-150405"))
	if err := os.Rename(a.filePath, rotated); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	file, err := os.OpenFile(a.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to reopen log file: %w", err)
	}

	a.file = file
	a.written = 0
	return nil
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// Health reports whether the file is still writable
func (a *FileAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("file adapter %s is closed", a.name)
	}
	return nil
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}

func (a *FileAdapter) formatJSON(entry *types.LogEntry) (string, error) {
	logData := map[string]interface{}{
		"level":   entry.Level.String(),
		"message": entry.Message,
		"time":    entry.Timestamp.Format(time.RFC3339),
	}

	for k, v := range entry.Fields {
		logData[k] = v
	}

	data, err := json.Marshal(logData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *FileAdapter) formatText(entry *types.LogEntry) (string, error) {
	timestamp := entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00")
	level := strings.ToUpper(entry.Level.String())

	output := fmt.Sprintf("%s [%s] %s", timestamp, level, entry.Message)

	if len(entry.Fields) > 0 {
		var fields []string
		for k, v := range entry.Fields {
			fields = append(fields, fmt.Sprintf("%s=%v", k, v))
		}
		output += " " + strings.Join(fields, " ")
	}

	return output, nil
}
