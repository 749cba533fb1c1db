// Package logging constructs the zerolog loggers used by the worker and
// the supervisor.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a logger writing to stderr in the configured format.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w. Console format wraps w in
// zerolog's console writer; JSON writes zerolog's native format.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	output := w
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.TimeFormat}
	}
	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromEnv creates a logger based on environment variables.
// UNPROMPTED_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// UNPROMPTED_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	cfg := DefaultConfig()

	if level := os.Getenv("UNPROMPTED_LOG_LEVEL"); level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			cfg.Level = parsed
		}
	}

	if format := os.Getenv("UNPROMPTED_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}

	return New(cfg)
}

// ForWorker derives the worker logger level from the config flags:
// debug_mode maps to trace (candidate-by-candidate diagnostics), verbose
// to debug, otherwise info.
func ForWorker(verbose, debugMode bool) zerolog.Logger {
	cfg := DefaultConfig()
	switch {
	case debugMode:
		cfg.Level = zerolog.TraceLevel
	case verbose:
		cfg.Level = zerolog.DebugLevel
	}
	return New(cfg)
}
