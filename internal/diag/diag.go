// Package diag configures the self-diagnostics logger. Capture
// diagnostics always target an original output stream, never the tee,
// so a broken log sink cannot echo into its own capture.
package diag

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to out. Verbose enables debug
// events (disabled capture causes, skipped rotations); the default
// level only surfaces rotation notices and warnings.
func New(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", "logcap").Logger().Level(level)
}
