package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var zlog zerolog.Logger

// Init initializes the structured zerolog logger.
// Development gets pretty console output, everything else JSON.
func Init(env string) {
	var w io.Writer

	if env == "development" || env == "dev" || env == "local" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	} else {
		w = os.Stdout
	}

	zlog = zerolog.New(w).With().
		Timestamp().
		Str("service", "approval-backend").
		Logger()

	zerolog.TimeFieldFormat = time.RFC3339
}

// Get returns the global zerolog logger
func Get() *zerolog.Logger {
	return &zlog
}

// Info logs a formatted info message
func Info(format string, args ...interface{}) {
	zlog.Info().Msgf(format, args...)
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msgf(format, args...)
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	zlog.Error().Msgf(format, args...)
}

// WithRequestID returns a logger with request_id field
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}

// WithUserEmail returns a logger with user_email field
func WithUserEmail(email string) zerolog.Logger {
	return zlog.With().Str("user_email", email).Logger()
}
