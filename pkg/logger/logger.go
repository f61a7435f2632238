package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Alert codes used across the engine.
const (
	AlertLimitsFailOpen     = "LIMITS_FAIL_OPEN"
	AlertProviderUnknown    = "PROVIDER_OUTCOME_UNKNOWN"
	AlertLedgerInvariant    = "LEDGER_INVARIANT"
	AlertLockRetryExhausted = "LOCK_RETRY_EXHAUSTED"
	AlertAmountMismatch     = "AMOUNT_MISMATCH"
	AlertOutboxPublish      = "OUTBOX_PUBLISH"
)

// New creates a configured zerolog.Logger.
// level: debug, info, warn, error. pretty: human-readable console output.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout

	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

// NewWithWriter creates a logger writing to a custom writer (useful for testing).
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Alert starts a fatal-severity event for on-call. Unlike log.Fatal() it
// never exits the process; callers finish it with Msg.
func Alert(log zerolog.Logger, code string) *zerolog.Event {
	return log.WithLevel(zerolog.FatalLevel).
		Bool("alert", true).
		Str("alert_code", code)
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
