// Package logging routes slog output to a file so it never draws over the
// terminal UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens path for appending, installs a text handler at level as the
// default logger and returns a func that restores the previous default and
// closes the file.
func Setup(path string, level slog.Level) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	prev := slog.Default()
	slog.SetDefault(New(f, level))
	return func() error {
		slog.SetDefault(prev)
		return f.Close()
	}, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Used when the log file
// cannot be opened.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
