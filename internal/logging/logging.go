// Package logging wires the process log sink: one-line leveled records on
// stderr, optionally duplicated to an append-only file. The returned
// logger is a handle passed down to components rather than a global.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the logger. When logFile is empty, records go to the console
// only. A log file that cannot be opened degrades to console-only logging
// instead of failing the run. The returned closer releases the file.
func New(logFile string) (zerolog.Logger, func()) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}
	closer := func() {}

	var out io.Writer = console
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log := newLogger(console)
			log.Error().Err(err).Str("file", logFile).Msg("cannot open log file, logging to console only")
			return log, closer
		}
		out = zerolog.MultiLevelWriter(console, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.DateTime,
			NoColor:    true,
		})
		closer = func() { f.Close() }
	}

	log := newLogger(out)
	if logFile != "" {
		log.Info().Str("file", logFile).Msg("logging to file")
	}
	return log, closer
}

func newLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
