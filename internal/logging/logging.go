package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes a zerolog.Logger based on the requested format.
// format can be "text" (human-friendly console) or "json" (structured).
// When file is non-empty, output is additionally appended there so the
// daemon keeps a durable run log next to its console output.
func Setup(format, file string) (zerolog.Logger, error) {
	var console zerolog.LevelWriter
	if format == "text" {
		console = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		console = zerolog.MultiLevelWriter(os.Stderr)
	}

	writer := console
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("open log file %s: %w", file, err)
		}
		writer = zerolog.MultiLevelWriter(console, f)
	}

	return zerolog.New(writer).With().Timestamp().Logger(), nil
}
