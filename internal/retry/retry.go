package retry

import (
	"context"
	"time"
)

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // Linear backoff: attempt * Delay

	// Delays, when set, overrides Delay/Backoff. Delays[i] is the pause
	// before attempt i+2; the last entry is reused if attempts outnumber it.
	Delays []time.Duration

	// Retryable decides whether an error is worth another attempt.
	// nil means every error is retried.
	Retryable func(error) bool

	// Sleep pauses between attempts. nil means Sleep from this package.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry is called after a failed attempt, before the pause.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// WithRetry calls fn until it succeeds, fails with a non-retryable error, or
// MaxAttempts is reached. The error of the last attempt is returned as is.
func WithRetry(ctx context.Context, config RetryConfig, fn func() error) error {
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := config.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		if config.Retryable != nil && !config.Retryable(err) {
			return err
		}

		delay := config.delayFor(attempt)
		if config.OnRetry != nil {
			config.OnRetry(attempt, delay, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// delayFor returns the pause that follows the given failed attempt.
func (c RetryConfig) delayFor(attempt int) time.Duration {
	if len(c.Delays) > 0 {
		i := attempt - 1
		if i >= len(c.Delays) {
			i = len(c.Delays) - 1
		}
		return c.Delays[i]
	}
	if c.Backoff {
		return time.Duration(attempt) * c.Delay
	}
	return c.Delay
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
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
