// Package logging wires up the zerolog logger shared by every miso command.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns the process logger. "text" gives the console writer for
// interactive harvest runs; anything else emits JSON lines, which is what
// scheduled runs ship to log collectors.
func Setup(format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
