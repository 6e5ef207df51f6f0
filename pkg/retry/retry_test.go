package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/visioncart/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	t.Run("FirstAttempt", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.RetryConfig{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		cfg := retry.RetryConfig{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		cfg := retry.RetryConfig{
			MaxAttempts: 4,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 4, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		errFatal := errors.New("fatal")
		var calls int
		cfg := retry.RetryConfig{
			MaxAttempts: 4,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool {
				return errors.Is(err, errTemporary)
			},
		}
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errFatal
		})
		assert.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		var calls int
		err := retry.Do(ctx, retry.RetryConfig{}, func() error {
			calls++
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("CanceledWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cfg := retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ConstantBackoff(time.Hour),
		}
		err := retry.Do(ctx, cfg, func() error {
			cancel()
			return errTemporary
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestDoWithResult(t *testing.T) {
	var calls int
	cfg := retry.RetryConfig{
		MaxAttempts: 2,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}
	v, err := retry.DoWithResult(t.Context(), cfg, func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errTemporary
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestExponentialBackoff(t *testing.T) {
	backoff := retry.ExponentialBackoff(10 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		base := (10 * time.Millisecond) << attempt
		got := backoff(attempt)
		assert.Greater(t, got, base)
		assert.LessOrEqual(t, got, base+base/2)
	}
}
