package service

import (
	"context"
	"errors"
	"time"

	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/logger"

	"github.com/rs/zerolog"
)

// RetryPolicy bounds how often a unit of work is re-run after a row lock timeout.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy matches the engine defaults in config.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 50 * time.Millisecond}

// withLockRetry runs fn until it succeeds, fails with anything other than a
// lock timeout, or the attempts are used up. Exhaustion raises an alert and
// surfaces as SYS_002; a lost ledger write is never silently dropped.
func withLockRetry[T any](ctx context.Context, p RetryPolicy, log zerolog.Logger, op string, fn func() (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var zero T
	var err error
	for i := 1; i <= attempts; i++ {
		var out T
		out, err = fn()
		if err == nil || !errors.Is(err, ports.ErrLockTimeout) {
			return out, err
		}
		log.Warn().Err(err).Str("op", op).Int("attempt", i).Msg("lock timeout, retrying")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.Backoff * time.Duration(i)):
		}
	}
	logger.Alert(log, logger.AlertLockRetryExhausted).
		Err(err).
		Str("op", op).
		Int("attempts", attempts).
		Msg("lock retries exhausted")
	return zero, apperror.ErrLockTimeout(err)
}
