package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init returns the process logger with structured JSON output on stdout and
// sets the global level. Level is parsed from the given string (e.g. "debug",
// "info", "warn", "error").
func Init(level, service string) zerolog.Logger {
	return New(os.Stdout, level, service)
}

// New builds a JSON logger writing to w.
func New(w io.Writer, level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	return zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
}
