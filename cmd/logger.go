package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// newLogger returns a logger which writes to the debug log file at path.
// If no path is given, all log messages are discarded.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("cannot open debug log %s: %w", path, err)
	}

	writer := zerolog.ConsoleWriter{Out: logFile, NoColor: true}
	logger := zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	return logger, func() { _ = logFile.Close() }, nil
}
