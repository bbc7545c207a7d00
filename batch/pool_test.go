package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEach_VisitsEveryIndex(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		seen := make([]int32, 50)
		err := forEach(context.Background(), len(seen), workers, func(_ context.Context, i int) error {
			atomic.AddInt32(&seen[i], 1)
			return nil
		})
		require.NoError(t, err)
		for i, n := range seen {
			assert.Equal(t, int32(1), n, "workers=%d index=%d", workers, i)
		}
	}
}

func TestForEach_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	err := forEach(context.Background(), 20, 1, func(_ context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEach_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int32
	err := forEach(ctx, 10, 2, func(context.Context, int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
