// Package logging sets up the zerolog logger. The TUI owns the terminal, so
// logs are written to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/brickmath/internal/config"
)

// DefaultPath resolves the log file location:
// $XDG_STATE_HOME/brickmath/brickmath.log, else ~/.local/state/brickmath/brickmath.log.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "brickmath", "brickmath.log"), nil
}

// New opens the configured log file for appending and returns a logger
// writing to it. The returned closer closes the file.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	path := cfg.File
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return zerolog.Nop(), nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	return NewWriter(f, level), f, nil
}

// NewWriter returns a logger writing JSON lines to w at the given level.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
