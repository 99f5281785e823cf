package ratelimit

import "context"

// Service defines the interface for inbound API rate limiting
// External packages should use this interface, not the concrete implementations
type Service interface {
	Allow(clientIP string) bool
	Wait(ctx context.Context, clientIP string) error
}

// FetchService defines the interface for outbound fetch admission control.
// Acquire blocks until it is safe to start one outbound request; Release
// returns the concurrency slot. It delays, never rejects (except on
// context cancellation).
type FetchService interface {
	Acquire(ctx context.Context) error
	Release()
	Snapshot() FetchSnapshot
}

// FetchSnapshot is a read-only view of the fetch limiter for monitoring
type FetchSnapshot struct {
	MaxConcurrent   int     `json:"max_concurrent"`
	CurrentRequests int     `json:"current_requests"`
	DelaySeconds    float64 `json:"delay"`
	BurstLimit      int     `json:"burst_limit"`
}
