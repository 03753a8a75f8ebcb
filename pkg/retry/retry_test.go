package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func noWait(int) time.Duration { return time.Millisecond }

func TestDoWithResult(t *testing.T) {
	t.Run("FirstAttempt", func(t *testing.T) {
		var calls int
		v, err := DoWithResult(t.Context(), RetryConfig{MaxAttempts: 3},
			func() (int, error) {
				calls++
				return 42, nil
			})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		v, err := DoWithResult(t.Context(),
			RetryConfig{MaxAttempts: 3, Backoff: noWait},
			func() (string, error) {
				calls++
				if calls < 3 {
					return "", errTemporary
				}
				return "ok", nil
			})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 3, calls)
	})

	t.Run("AttemptsExhausted", func(t *testing.T) {
		var calls int
		_, err := DoWithResult(t.Context(),
			RetryConfig{MaxAttempts: 2, Backoff: noWait},
			func() (int, error) {
				calls++
				return 0, errTemporary
			})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 2, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		permanent := errors.New("permanent")
		var calls int
		_, err := DoWithResult(t.Context(),
			RetryConfig{
				MaxAttempts: 5,
				Backoff:     noWait,
				ShouldRetry: func(err error) bool {
					return errors.Is(err, errTemporary)
				},
			},
			func() (int, error) {
				calls++
				return 1, permanent
			})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		var calls int
		_, err := DoWithResult(ctx, RetryConfig{}, func() (int, error) {
			calls++
			return 0, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("CanceledWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		_, err := DoWithResult(ctx,
			RetryConfig{MaxAttempts: 3, Backoff: LinearBackoff(time.Hour)},
			func() (int, error) {
				cancel()
				return 0, errTemporary
			})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestDo(t *testing.T) {
	var calls int
	err := Do(t.Context(), RetryConfig{MaxAttempts: 2, Backoff: noWait},
		func() error {
			calls++
			return errTemporary
		})
	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 2, calls)
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(10 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		base := time.Duration(1<<attempt) * 10 * time.Millisecond
		d := b(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}
