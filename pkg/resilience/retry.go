package resilience

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy bounds a retry loop
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffStrategy

	// Retryable decides whether an error is worth another attempt. nil retries everything.
	Retryable func(error) bool
}

// Retry calls fn until it succeeds, returns a non-retryable error, exhausts MaxAttempts,
// or ctx is done. The last error is returned wrapped with the attempt count.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if policy.Retryable != nil && !policy.Retryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(policy.Backoff.NextDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted after %d attempts: %w", attempt+1, ctx.Err())
		case <-timer.C:
		}
	}

	if attempts == 1 {
		return err
	}
	return fmt.Errorf("giving up after %d attempts: %w", attempts, err)
}
