// Package retry runs an operation a bounded number of times with backoff
// between attempts. It knows nothing about what the operation does.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Backoff returns the pause before the given attempt (attempt >= 1 is the
// first retry).
type Backoff func(attempt int) time.Duration

// Linear returns base × attempt.
func Linear(base time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		return base * time.Duration(attempt)
	}
}

// Exponential returns base × 2^(attempt-1), capped at max.
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		shift := attempt - 1
		if shift > 10 {
			shift = 10
		}
		d := base * time.Duration(1<<shift)
		if max > 0 && d > max {
			d = max
		}
		return d
	}
}

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts int
	Backoff     Backoff

	// Sleep waits between attempts; nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry, if set, is called after a failed attempt that will be retried.
	OnRetry func(attempt int, err error)
}

// Default is three attempts with a linear 1s backoff.
func Default() Policy {
	return Policy{MaxAttempts: 3, Backoff: Linear(time.Second)}
}

// NoWait returns p with sleeping disabled. Useful in tests.
func (p Policy) NoWait() Policy {
	p.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return p
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// ErrExhausted wraps the last error once all attempts failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do calls fn until it succeeds, returns a permanent error, the context is
// done, or MaxAttempts is reached.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	_, err := Value(ctx, p, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, fn(ctx, attempt)
	})
	return err
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if attempt > 1 && p.Backoff != nil {
			if err := sleep(ctx, p.Backoff(attempt-1)); err != nil {
				return zero, err
			}
		}

		v, err := fn(ctx, attempt)
		if err == nil {
			return v, nil
		}
		if IsPermanent(err) {
			var pe *permanentError
			errors.As(err, &pe)
			return zero, pe.err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		lastErr = err
		if p.OnRetry != nil && attempt < attempts {
			p.OnRetry(attempt, err)
		}
	}
	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
