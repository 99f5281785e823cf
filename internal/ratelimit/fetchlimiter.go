package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// burstWindow is the trailing window the burst cap is enforced over
const burstWindow = time.Second

// FetchLimiter bounds outbound fetch concurrency and smooths bursts.
// Three layers compose: a weighted semaphore caps in-flight requests
// (protects sockets/fds), a sliding window of request-start times caps
// starts per second (avoids tripping remote anti-abuse defenses), and a
// rate.Limiter keeps consecutive starts at least minDelay apart.
type FetchLimiter struct {
	sem           *semaphore.Weighted
	pacer         *rate.Limiter
	maxConcurrent int
	burstLimit    int
	minDelay      time.Duration

	mu           sync.Mutex
	requestTimes []time.Time
	inFlight     int
}

// NewFetchLimiter creates a fetch limiter with the given concurrency bound,
// minimum inter-request delay and per-second burst cap
func NewFetchLimiter(maxConcurrent int, minDelay time.Duration, burstLimit int) *FetchLimiter {
	return &FetchLimiter{
		sem:           semaphore.NewWeighted(int64(maxConcurrent)),
		pacer:         rate.NewLimiter(rate.Every(minDelay), 1),
		maxConcurrent: maxConcurrent,
		burstLimit:    burstLimit,
		minDelay:      minDelay,
	}
}

// Acquire blocks until one outbound request may start. The caller must call
// Release when the request finishes, regardless of its outcome.
func (l *FetchLimiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	if err := l.waitForBurstWindow(ctx); err != nil {
		l.sem.Release(1)
		return err
	}

	if err := l.pacer.Wait(ctx); err != nil {
		l.sem.Release(1)
		return err
	}

	l.mu.Lock()
	now := time.Now()
	l.pruneLocked(now)
	l.requestTimes = append(l.requestTimes, now)
	l.inFlight++
	l.mu.Unlock()

	return nil
}

// Release returns a concurrency slot
func (l *FetchLimiter) Release() {
	l.mu.Lock()
	if l.inFlight > 0 {
		l.inFlight--
	}
	l.mu.Unlock()
	l.sem.Release(1)
}

// waitForBurstWindow sleeps until the oldest request-start falls out of the
// trailing window whenever the window is full
func (l *FetchLimiter) waitForBurstWindow(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()
		l.pruneLocked(now)
		var wait time.Duration
		if len(l.requestTimes) >= l.burstLimit {
			wait = burstWindow - now.Sub(l.requestTimes[0])
		}
		l.mu.Unlock()

		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// pruneLocked drops request times older than the trailing window.
// Caller must hold l.mu.
func (l *FetchLimiter) pruneLocked(now time.Time) {
	cutoff := 0
	for cutoff < len(l.requestTimes) && now.Sub(l.requestTimes[cutoff]) >= burstWindow {
		cutoff++
	}
	if cutoff > 0 {
		l.requestTimes = append(l.requestTimes[:0], l.requestTimes[cutoff:]...)
	}
}

// Snapshot returns a read-only view for the performance endpoint
func (l *FetchLimiter) Snapshot() FetchSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked(time.Now())

	return FetchSnapshot{
		MaxConcurrent:   l.maxConcurrent,
		CurrentRequests: len(l.requestTimes),
		DelaySeconds:    l.minDelay.Seconds(),
		BurstLimit:      l.burstLimit,
	}
}
