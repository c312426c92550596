package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/retry"
)

var errTest = errors.New("test error")

func TestCall(t *testing.T) {
	tests := []struct {
		desc             string
		failures         int
		failWith         error
		strategy         retry.RetryStrategyFunc
		expectedAttempts int
		expectedError    error
	}{
		{
			desc:             "succeeds after retries",
			failures:         2,
			failWith:         errTest,
			strategy:         retry.WithExponentialBackoffFn(5, 1, 10),
			expectedAttempts: 3,
		},
		{
			desc:     "gives up after max retries",
			failures: 10,
			failWith: errTest,
			strategy: retry.WithExponentialBackoffFn(2, 1, 10),
			// One initial attempt plus two retries.
			expectedAttempts: 3,
			expectedError:    errTest,
		},
		{
			desc:             "non-retryable error stops immediately",
			failures:         10,
			failWith:         retry.NonRetryable(errTest),
			strategy:         retry.WithExponentialBackoffFn(5, 1, 10),
			expectedAttempts: 1,
			expectedError:    retry.ErrNonRetryable,
		},
		{
			desc:             "no retry",
			failures:         10,
			failWith:         errTest,
			strategy:         retry.WithNoRetry(),
			expectedAttempts: 1,
			expectedError:    errTest,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var attempts int
			result, err := retry.Call(context.Background(), func(context.Context) (string, error) {
				attempts++
				if attempts <= test.failures {
					return "", test.failWith
				}
				return "ok", nil
			}, test.strategy)

			require.Equal(t, test.expectedAttempts, attempts)
			if test.expectedError != nil {
				require.ErrorIs(t, err, test.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "ok", result)
		})
	}
}

func TestCall_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var attempts int
	start := time.Now()
	_, err := retry.Call(ctx, func(context.Context) (int, error) {
		attempts++
		return 0, errTest
	}, retry.WithExponentialBackoffFn(5, 10_000, 10_000))

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, attempts)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestCall_ContextDoneBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := retry.Call(ctx, func(context.Context) (int, error) {
		t.Fatal("work must not run")
		return 0, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithExponentialBackoffFn_CapsDelay(t *testing.T) {
	strategy := retry.WithExponentialBackoffFn(100, 5, 5)
	ctx := context.Background()

	start := time.Now()
	require.True(t, strategy(ctx, 4))
	// 5 * 2^4 = 80ms uncapped; capped to 5ms.
	require.True(t, strategy(ctx, 70))
	require.Less(t, time.Since(start), 50*time.Millisecond)
	require.False(t, strategy(ctx, 100))
}
