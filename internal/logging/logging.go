// Package logging builds the logrus logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jask/catalog/internal/config"
)

// New returns a logger writing to cfg.File. The TUI owns the terminal, so
// nothing goes to stdout or stderr. The returned closer releases the file.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// NewStderr returns the logger used by non-interactive commands: warnings and
// above on stderr unless cfg asks for more.
func NewStderr(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if level, err := parseLevel(cfg.Level); err == nil && level > logrus.WarnLevel {
		logger.SetLevel(level)
	}
	return logger
}

func parseLevel(s string) (logrus.Level, error) {
	if s == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
