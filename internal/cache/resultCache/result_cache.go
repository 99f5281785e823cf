package resultCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Website_Analysis/internal/cache"
	"Website_Analysis/internal/models"
)

// resultCache implements Service on top of a generic cache
type resultCache struct {
	cache cache.Service
	ttl   time.Duration
}

// New creates a new analysis result cache with a default TTL
func New(cache cache.Service, ttl time.Duration) Service {
	return &resultCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get retrieves an analysis result from the cache
func (r *resultCache) Get(ctx context.Context, domain string) (*models.AnalysisResult, error) {
	value, err := r.cache.Get(ctx, cacheKey(domain))
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case *models.AnalysisResult:
		// Memory backend stores the struct directly
		return v, nil
	case string:
		// Redis backend stores serialized JSON
		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(v), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached analysis: %w", err)
		}
		return &result, nil
	default:
		return nil, fmt.Errorf("unexpected cached value type %T", value)
	}
}

// Set stores an analysis result; ttl <= 0 falls back to the default TTL
func (r *resultCache) Set(ctx context.Context, domain string, result *models.AnalysisResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.cache.Set(ctx, cacheKey(domain), result, ttl)
}

// Delete removes a cached analysis result
func (r *resultCache) Delete(ctx context.Context, domain string) error {
	return r.cache.Delete(ctx, cacheKey(domain))
}

func cacheKey(domain string) string {
	return fmt.Sprintf("analysis:%s", domain)
}
