// Package logger configures zerolog for the application. The TUI owns the
// terminal, so all output goes to a log file.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at path. An empty path discards
// everything.
func Setup(path string, debug bool) (io.Closer, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if path == "" {
		log.Logger = zerolog.Nop()
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// New returns a logger tagged with a context name.
func New(ctx string) zerolog.Logger {
	return log.With().Str("ctx", ctx).Logger()
}
