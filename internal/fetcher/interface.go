package fetcher

import (
	"context"
	"time"

	"Website_Analysis/internal/models"
)

// Service defines the interface for fetching web pages
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Fetch retrieves a page for the given domain, trying HTTPS then HTTP
	// for bare domains. It never returns a Go error: failures are reported
	// through FetchResult.Error.
	Fetch(ctx context.Context, domain string, timeout time.Duration) *models.FetchResult

	// FetchURL retrieves a single explicit URL with no scheme fallback
	FetchURL(ctx context.Context, url string, timeout time.Duration) *models.FetchResult
}
