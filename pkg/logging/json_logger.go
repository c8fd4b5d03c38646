package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogEntry represents a single JSON log entry.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// JSONLoggerConfig configures the JSONLogger.
type JSONLoggerConfig struct {
	// OutputPath is the log file path. Empty means stdout.
	OutputPath string
	// Level is the minimum level to emit.
	Level LogLevel
	// Fields are default fields attached to every entry.
	Fields map[string]any
}

// JSONLogger implements Logger with JSON Lines output.
type JSONLogger struct {
	mu     sync.Mutex
	output io.Writer
	file   *os.File
	level  LogLevel
	fields map[string]any
	closed bool
}

// NewJSONLogger creates a new JSON logger. If OutputPath is
// empty, entries are written to stdout.
func NewJSONLogger(config JSONLoggerConfig) (*JSONLogger, error) {
	logger := &JSONLogger{
		level:  config.Level,
		fields: config.Fields,
	}
	if logger.fields == nil {
		logger.fields = make(map[string]any)
	}

	if config.OutputPath != "" {
		dir := filepath.Dir(config.OutputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf(
				"failed to create log directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			config.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		logger.output = file
		logger.file = file
	} else {
		logger.output = os.Stdout
	}

	return logger, nil
}

func (l *JSONLogger) log(
	level LogLevel, msg string, fields ...Field,
) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
	}

	if len(l.fields) > 0 || len(fields) > 0 {
		entry.Fields = make(
			map[string]any, len(l.fields)+len(fields),
		)
		for k, v := range l.fields {
			entry.Fields[k] = v
		}
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.output.Write(append(data, '\n'))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

// Debug logs a debug-level message.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields...)
}

// WithFields returns a logger with additional default fields.
// The returned logger shares the underlying output.
func (l *JSONLogger) WithFields(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}

	return &JSONLogger{
		output: l.output,
		file:   nil, // only the root logger owns the file
		level:  l.level,
		fields: merged,
	}
}

// Close flushes and closes the underlying file, if any.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
