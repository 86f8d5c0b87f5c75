package foxess

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_FirstCallIsFree(t *testing.T) {
	t.Parallel()
	l := newLimiter()

	start := time.Now()
	require.NoError(t, l.wait(context.Background(), false))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.False(t, l.last.IsZero())
}

func TestLimiter_ElapsedIntervalIsFree(t *testing.T) {
	t.Parallel()
	now := time.Now()
	l := newLimiter()
	l.now = func() time.Time { return now }
	l.last = now.Add(-5 * time.Second)

	start := time.Now()
	require.NoError(t, l.wait(context.Background(), true))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, now, l.last)
}

func TestLimiter_BlocksUntilContextDone(t *testing.T) {
	t.Parallel()
	now := time.Now()
	l := newLimiter()
	l.now = func() time.Time { return now }
	l.last = now // previous call just happened

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.wait(ctx, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_WriteGateIsTwoSeconds(t *testing.T) {
	t.Parallel()
	now := time.Now()
	l := newLimiter()
	l.now = func() time.Time { return now }

	// 1.5s since the last call satisfies the read gate...
	l.last = now.Add(-1500 * time.Millisecond)
	require.NoError(t, l.wait(context.Background(), false))

	// ...but a write at the same elapsed time still has to wait.
	l.last = now.Add(-1500 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.wait(ctx, true), context.DeadlineExceeded)
}

func TestLimiter_ReadWaitsMinimumInterval(t *testing.T) {
	t.Parallel()
	l := newLimiter()
	require.NoError(t, l.wait(context.Background(), false))

	start := time.Now()
	require.NoError(t, l.wait(context.Background(), false))
	// 1s interval plus the 200ms catch-up padding.
	assert.GreaterOrEqual(t, time.Since(start), readInterval)
}
