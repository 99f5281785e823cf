package resultCache

import (
	"context"
	"time"

	"Website_Analysis/internal/models"
)

// Service defines the interface for caching domain analysis results
// External packages should use this interface, not the concrete implementations
type Service interface {
	Get(ctx context.Context, domain string) (*models.AnalysisResult, error)
	Set(ctx context.Context, domain string, result *models.AnalysisResult, ttl time.Duration) error
	Delete(ctx context.Context, domain string) error
}
