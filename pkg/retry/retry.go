package retry

import (
	"context"
	"errors"
	"time"
)

// WithDefaultExponentialDelay retries up to 5 times, starting at 500ms and
// capping each delay at 30s.
var WithDefaultExponentialDelay = WithExponentialBackoffFn(5, 500, 30000)

// RetryStrategyFunc is called after each failed attempt with the zero-based
// retry count. It waits for the desired delay, or until ctx is done, and
// reports whether another attempt should be made.
type RetryStrategyFunc func(ctx context.Context, retryCount int) bool

// Call runs work until it succeeds, returns an error wrapping
// ErrNonRetryable, the retry strategy gives up, or ctx is done. The result
// and error of the last attempt are returned; when ctx ends the retries, its
// error is returned instead.
//
// WithDefaultExponentialDelay is used when no strategy is given.
func Call[T any](
	ctx context.Context,
	work func(ctx context.Context) (T, error),
	retryStrategy ...RetryStrategyFunc,
) (T, error) {
	strategy := WithDefaultExponentialDelay
	if len(retryStrategy) > 0 {
		strategy = retryStrategy[0]
	}

	for retryCount := 0; ; retryCount++ {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}

		result, err := work(ctx)
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, ErrNonRetryable):
			return result, err
		case !strategy(ctx, retryCount):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			return result, err
		}
	}
}

// WithExponentialBackoffFn returns a strategy which waits
// initialDelayMs * 2^retryCount, capped at maxDelayMs, between attempts and
// gives up after maxRetryCount retries.
func WithExponentialBackoffFn(
	maxRetryCount int,
	initialDelayMs int,
	maxDelayMs int,
) RetryStrategyFunc {
	return func(ctx context.Context, retryCount int) bool {
		if retryCount >= maxRetryCount {
			return false
		}

		delay := time.Duration(initialDelayMs) * time.Millisecond << retryCount
		maxDelay := time.Duration(maxDelayMs) * time.Millisecond
		// The shift overflows to a non-positive value for large retry counts.
		if delay <= 0 || delay > maxDelay {
			delay = maxDelay
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			return true
		case <-ctx.Done():
			return false
		}
	}
}

// WithNoRetry never retries.
func WithNoRetry() RetryStrategyFunc {
	return func(context.Context, int) bool { return false }
}
