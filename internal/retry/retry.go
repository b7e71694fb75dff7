// Package retry implements a fixed-delay retry policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoAttempts is returned when a policy allows zero attempts.
	ErrNoAttempts = errors.New("retry: no attempts allowed")

	// ErrExhausted wraps the last error once every attempt has failed.
	ErrExhausted = errors.New("retry: attempts exhausted")
)

// Policy describes how often and how long to retry an operation.
type Policy struct {
	MaxAttempts int           // Total attempts including the first
	Delay       time.Duration // Fixed pause between attempts

	// Retryable decides whether an error is worth another attempt.
	// A nil Retryable retries every error.
	Retryable func(error) bool

	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(attempt int, err error)

	sleep func(ctx context.Context, d time.Duration) error
}

// Do calls fn until it succeeds, returns a non-retryable error, the attempts
// run out, or ctx is done. Attempts are numbered from 1.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	if p.MaxAttempts < 1 {
		return ErrNoAttempts
	}

	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, p.MaxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
