package common

import (
	"context"
	"errors"
	"time"
)

// TransientError marks an error as retryable. Wrap network, timeout and
// quota errors with MarkTransient; anything unmarked is permanent and
// fails a retry loop immediately.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// MarkTransient wraps err so IsTransient reports true for it.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err (or anything it wraps) is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// RetryConfig controls the exponential backoff retry policy.
type RetryConfig struct {
	MaxRetries      int           // additional attempts after the first
	BaseDelay       time.Duration // delay before the first retry
	ExponentialBase float64       // delay multiplier per attempt
	MaxDelay        time.Duration // ceiling on any single delay
}

// DefaultRetryConfig returns the standard policy: 2 retries, 1s base,
// doubling, capped at 30s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      2,
		BaseDelay:       time.Second,
		ExponentialBase: 2.0,
		MaxDelay:        30 * time.Second,
	}
}

// delay returns min(base * expBase^attempt, maxDelay) for a zero-based attempt.
func (c RetryConfig) delay(attempt int) time.Duration {
	mult := 1.0
	for i := 0; i < attempt; i++ {
		mult *= c.ExponentialBase
	}
	d := time.Duration(float64(c.BaseDelay) * mult)
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// Retry runs op until it succeeds, returns a permanent error, or the
// retry budget is exhausted. Only errors marked transient are retried.
// Context cancellation aborts the wait between attempts.
func Retry[T any](ctx context.Context, cfg RetryConfig, logger *Logger, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == cfg.MaxRetries {
			return zero, lastErr
		}

		wait := cfg.delay(attempt)
		logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", cfg.MaxRetries).
			Dur("wait", wait).
			Msg("Transient failure, retrying")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
