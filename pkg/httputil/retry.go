package httputil

import (
	"context"
	"errors"
	"time"
)

// DefaultRetryDelay is the wait before the second attempt of a [Policy]
// that does not set one.
const DefaultRetryDelay = 500 * time.Millisecond

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (connection errors, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err's chain contains a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// Policy describes how many extra attempts a caller is willing to make.
// The zero Policy makes exactly one attempt.
type Policy struct {
	Retries int           // attempts after the first one
	Delay   time.Duration // initial backoff, DefaultRetryDelay if zero
}

// Do runs fn under p. See [Retry].
func (p Policy) Do(ctx context.Context, fn func() error) error {
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return Retry(ctx, p.Retries+1, delay, fn)
}
