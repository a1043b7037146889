package httputil

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/butterfly/pkg/errors"
)

// MaxRetryWait caps a single backoff wait, including waits requested by a
// server's Retry-After header.
const MaxRetryWait = 30 * time.Second

// RetryableError marks a fetch failure as transient. [Retry] only repeats
// attempts whose error carries this marker; the marker itself never
// escapes Retry.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn up to attempts times. The wait starts at delay and doubles
// after each transient failure; a rate-limited failure waits at least its
// Retry-After. A permanent error stops immediately. The returned error is
// the underlying cause with any [RetryableError] marker removed, or
// ctx.Err() when cancelled during a wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !stderrors.As(err, &re) {
			return err
		}
		lastErr = re.Err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(delay, lastErr)):
			delay *= 2
		}
	}
	return lastErr
}

// backoff returns the wait before the next attempt.
func backoff(delay time.Duration, err error) time.Duration {
	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
		delay = max(delay, time.Duration(rl.RetryAfter)*time.Second)
	}
	return min(delay, MaxRetryWait)
}
