package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name onto zerolog, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger builds the process logger. format is "json" or "console";
// console output is colored only when stderr is a terminal.
func NewLogger(level, format string) zerolog.Logger {
	return newLogger(os.Stderr, level, format, isatty.IsTerminal(os.Stderr.Fd()))
}

func newLogger(out io.Writer, level, format string, color bool) zerolog.Logger {
	if format == "json" {
		return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}
	return zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Logger()
}
