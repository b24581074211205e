// Package logging builds the zerolog logger shared by all commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config selects the logger output.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // console, pretty, json
	Output io.Writer
}

// New creates a logger. Output defaults to stderr so stdout stays free for
// command results.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty", "":
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.Output != nil,
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(cfg.Level))
}

// ParseLevel converts a level name to zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewRunID returns an identifier tying together the log lines and reports
// of one batch.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun tags a logger with a run id and operation name.
func WithRun(logger zerolog.Logger, runID, op string) zerolog.Logger {
	return logger.With().
		Str("run_id", runID).
		Str("op", op).
		Logger()
}
