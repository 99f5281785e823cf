package domainAnalysis

import (
	"context"
	"time"

	"Website_Analysis/internal/models"
)

// Options tune a single analysis request
type Options struct {
	// Timeout bounds each fetch attempt; zero means the service default
	Timeout time.Duration
	// BatchSize caps concurrent domain analyses within one request
	BatchSize int
	// EmailPriority is the caller's ordered rule list; nil means default
	EmailPriority []string
}

// AnalysisService defines the interface for domain analysis operations.
// Analysis never fails with a Go error: all failure paths produce a result
// with an error status and a populated Error field.
type AnalysisService interface {
	AnalyzeDomain(ctx context.Context, domain string, opts Options) *models.AnalysisResult
	AnalyzeDomains(ctx context.Context, domains []string, opts Options) []*models.AnalysisResult
	AnalyzeDomainsSequential(ctx context.Context, domains []string, opts Options) []*models.AnalysisResult
}
