package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLimiter_AcquireRelease(t *testing.T) {
	limiter := NewFetchLimiter(2, time.Millisecond, 100)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))

	limiter.Release()
	limiter.Release()

	require.NoError(t, limiter.Acquire(ctx))
	limiter.Release()
}

func TestFetchLimiter_ConcurrencyBound(t *testing.T) {
	limiter := NewFetchLimiter(1, time.Millisecond, 100)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))

	// Second acquire must block until the slot is released
	blocked := make(chan error, 1)
	go func() {
		blocked <- limiter.Acquire(ctx)
	}()

	select {
	case <-blocked:
		t.Fatal("second Acquire should block while the slot is held")
	case <-time.After(50 * time.Millisecond):
	}

	limiter.Release()

	select {
	case err := <-blocked:
		require.NoError(t, err)
		limiter.Release()
	case <-time.After(time.Second):
		t.Fatal("second Acquire never unblocked")
	}
}

func TestFetchLimiter_CancelledContext(t *testing.T) {
	limiter := NewFetchLimiter(1, time.Millisecond, 100)

	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchLimiter_MinDelayPacing(t *testing.T) {
	limiter := NewFetchLimiter(10, 50*time.Millisecond, 100)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(ctx))
		limiter.Release()
	}
	elapsed := time.Since(start)

	// Three starts with a 50ms floor between them need at least ~100ms
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
}

func TestFetchLimiter_BurstWindow(t *testing.T) {
	limiter := NewFetchLimiter(10, time.Millisecond, 2)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(ctx))
		limiter.Release()
	}
	elapsed := time.Since(start)

	// The third start must wait for the first to leave the trailing window
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond)
}

func TestFetchLimiter_Snapshot(t *testing.T) {
	limiter := NewFetchLimiter(7, 100*time.Millisecond, 42)

	snap := limiter.Snapshot()

	assert.Equal(t, 7, snap.MaxConcurrent)
	assert.Equal(t, 42, snap.BurstLimit)
	assert.InDelta(t, 0.1, snap.DelaySeconds, 0.001)
	assert.Equal(t, 0, snap.CurrentRequests)

	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	assert.Equal(t, 1, limiter.Snapshot().CurrentRequests)
}
