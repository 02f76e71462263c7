package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = New(os.Stderr)

// New builds a console logger writing to w at info level.
func New(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// SetOutput redirects all further log lines to w, keeping the current level.
func SetOutput(w io.Writer) {
	level := log.GetLevel()
	log = New(w).Level(level)
}

// SetDebug toggles debug output.
func SetDebug(enabled bool) {
	if enabled {
		log = log.Level(zerolog.DebugLevel)
		return
	}
	log = log.Level(zerolog.InfoLevel)
}

// Debugf prints messages only when debug output is enabled
func Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}
