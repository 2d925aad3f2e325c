// Package logging configures the application logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the application logger. Console output is human-readable;
// JSON output is for machine consumption. Unknown levels fall back to
// info.
func New(level string, jsonOutput bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	if !jsonOutput {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Nop returns a disabled logger, for tests and optional dependencies.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
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
