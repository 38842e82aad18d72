// Package logging builds the slog logger shared by the services.
//
// Diagnostics go to stderr so that stdout stays reserved for command output
// (scope listings, JSON, review bodies). Verbose runs log at debug level,
// which includes every external command line.
package logging

import (
	"io"
	"log/slog"
)

// Config controls the logger.
type Config struct {
	Verbose bool
	JSON    bool
}

// Level maps the verbosity flag to a slog level.
func (c Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// New returns a logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything, for tests and library use.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
