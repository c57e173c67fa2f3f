package cliconfig

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI logger for cfg, writing to w.
// Filtering is left to the global level (see ApplyLogLevel) so that a
// reloaded config can change it for loggers already handed out.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.LogFormat != LogFormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// ApplyLogLevel sets the process-wide minimum log level.
func ApplyLogLevel(level string) zerolog.Level {
	l := ParseLevel(level)
	zerolog.SetGlobalLevel(l)
	return l
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
