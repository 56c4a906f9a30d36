package apierr

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig tunes the exponential backoff applied to generation calls.
//
// A zero value is usable: out-of-range fields are replaced before the first
// attempt. Negative MaxRetries means a single attempt, a non-positive
// BaseDelay falls back to 1ms, and a non-positive MaxDelay falls back to
// BaseDelay.
type RetryConfig struct {
	MaxRetries int           // retries after the initial attempt
	BaseDelay  time.Duration // wait before the first retry
	MaxDelay   time.Duration // backoff ceiling
}

// normalized returns a copy with out-of-range fields replaced.
func (c RetryConfig) normalized() RetryConfig {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = c.BaseDelay
	}
	return c
}

// RetryWithBackoff runs fn until it succeeds, shouldRetry rejects the error,
// or the retry allowance is spent. The wait between attempts doubles from
// BaseDelay up to MaxDelay; ctx cancels both the waits and the loop. When the
// allowance runs out, the last error is returned wrapped.
func RetryWithBackoff[T any](
	ctx context.Context,
	cfg RetryConfig,
	fn func() (T, error),
	shouldRetry func(error) bool,
) (T, error) {
	cfg = cfg.normalized()

	var zero T
	var lastErr error
	delay := cfg.BaseDelay

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return zero, ctx.Err()
			case <-timer.C:
			}
			delay = min(delay*2, cfg.MaxDelay)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !shouldRetry(lastErr) {
			return zero, lastErr
		}
	}

	return zero, fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, lastErr)
}
