// Package logging configures the structured loggers used by the CLI and TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to w at the given level name.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl := logrus.WarnLevel
	if level != "" {
		var err error
		lvl, err = logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// OpenFile returns a debug-level JSON logger appending to path.
// The returned close function flushes a final entry and closes the file.
func OpenFile(path string) (*logrus.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	l, err := New(f, "debug")
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	l.WithField("log_file", path).Debug("debug log started")

	closeFn := func() error {
		l.Debug("debug log closed")
		return f.Close()
	}
	return l, closeFn, nil
}
