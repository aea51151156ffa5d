package cmd

import (
	"io"
	"os"
	"time"

	"github.com/etnz/perfsheet/config"
	"github.com/rs/zerolog"
)

// newLogger creates the structured logger. Logs go to stderr, stdout is
// kept for the command output.
func newLogger(cfg config.Logging) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
