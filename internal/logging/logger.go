// Package logging provides the file-backed debug log shared by jrny components.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes timestamped lines to a log file.
// A nil Logger or one without a destination is a no-op.
type Logger struct {
	mu     *sync.Mutex
	out    io.Writer
	closer io.Closer
	prefix string
}

// New creates a logger appending to the file at logPath.
// If logPath is empty, it returns a no-op logger.
// Creates parent directories if they don't exist.
func New(logPath string) (*Logger, error) {
	if logPath == "" {
		return &Logger{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{mu: &sync.Mutex{}, out: f, closer: f}
	l.Log("=== jrny log opened at %s ===", time.Now().Format(time.RFC3339))
	return l, nil
}

// NewWriter creates a logger writing to w. Used by tests to capture output.
func NewWriter(w io.Writer) *Logger {
	return &Logger{mu: &sync.Mutex{}, out: w}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{}
}

// With returns a logger sharing the destination that tags every line with
// the given component name.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{mu: l.mu, out: l.out, prefix: component}
}

// Log writes a timestamped message.
func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil || l.out == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05.000")
	if l.prefix != "" {
		fmt.Fprintf(l.out, "[%s] %s: %s\n", timestamp, l.prefix, msg)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", timestamp, msg)
}

// Close closes the underlying file, if the logger owns one.
// Loggers derived with With do not own the file.
// Safe to call on nil logger.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.closer.Close()
}
