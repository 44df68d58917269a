package retrier

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	r := New(WithInitialInterval(time.Millisecond))

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	r := New(WithInitialInterval(time.Millisecond), WithMaxInterval(2*time.Millisecond))

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	r := New(WithInitialInterval(time.Millisecond), WithMaxAttempts(3))

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.Errorf("attempt %d", calls)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "attempt 3")
}

func TestDo_StopsOnContextCancel(t *testing.T) {
	r := New(WithInitialInterval(50*time.Millisecond), WithMaxAttempts(0))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Do(ctx, func(ctx context.Context) error {
		return errors.New("always failing")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
