// Package logging configures the zerolog logger used across postinstall.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the log file path relative to the XDG state directory.
const LogFileName = "postinstall/postinstall.log"

// SetupLogger configures the global logger based on verbosity level.
// Output goes to the console and, when it can be created, to a log file.
func SetupLogger(verbosity int) {
	setup(verbosity, os.Stderr, true)
}

// SetupLoggerTo configures the global logger to write plain JSON to w only.
func SetupLoggerTo(verbosity int, w io.Writer) {
	setup(verbosity, w, false)
}

func setup(verbosity int, console io.Writer, withFile bool) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{console}
	if withFile {
		writers[0] = zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.Kitchen,
		}
	}

	var fileErr error
	var logPath string
	if withFile {
		var f *os.File
		logPath, f, fileErr = openLogFile()
		if fileErr == nil {
			writers = append(writers, f)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logPath).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// openLogFile creates the log file under $XDG_STATE_HOME in append mode.
func openLogFile() (string, *os.File, error) {
	path, err := xdg.StateFile(LogFileName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve log file path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return path, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return path, f, nil
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
