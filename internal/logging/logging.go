// Package logging sets up the structured log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xolan/otdash/internal/osutil"
)

// LogFile is the log file name inside the app directory.
const LogFile = "otdash.log"

// GetLogPath returns the path to the log file.
func GetLogPath() (string, error) {
	return osutil.AppFile(LogFile)
}

// New returns a JSON logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Open appends JSON logs to path. The returned close func closes the file.
func Open(path string, level slog.Level) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

// OpenDefault opens the log file in the app directory. If it cannot be
// opened the logger discards and the error is returned for the caller to
// report.
func OpenDefault(level slog.Level) (*slog.Logger, func() error, error) {
	path, err := GetLogPath()
	if err != nil {
		return Discard(), func() error { return nil }, err
	}
	logger, closeFn, err := Open(path, level)
	if err != nil {
		return Discard(), func() error { return nil }, err
	}
	return logger, closeFn, nil
}
