package mocks

import (
	"context"

	"Website_Analysis/internal/domainAnalysis"
	"Website_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAnalysisService is a mock implementation of domainAnalysis.AnalysisService
type MockAnalysisService struct {
	mock.Mock
}

// AnalyzeDomain mocks the AnalyzeDomain method of domainAnalysis.AnalysisService
func (m *MockAnalysisService) AnalyzeDomain(ctx context.Context, domain string, opts domainAnalysis.Options) *models.AnalysisResult {
	args := m.Called(ctx, domain, opts)
	return args.Get(0).(*models.AnalysisResult)
}

// AnalyzeDomains mocks the AnalyzeDomains method of domainAnalysis.AnalysisService
func (m *MockAnalysisService) AnalyzeDomains(ctx context.Context, domains []string, opts domainAnalysis.Options) []*models.AnalysisResult {
	args := m.Called(ctx, domains, opts)
	return args.Get(0).([]*models.AnalysisResult)
}

// AnalyzeDomainsSequential mocks the AnalyzeDomainsSequential method of domainAnalysis.AnalysisService
func (m *MockAnalysisService) AnalyzeDomainsSequential(ctx context.Context, domains []string, opts domainAnalysis.Options) []*models.AnalysisResult {
	args := m.Called(ctx, domains, opts)
	return args.Get(0).([]*models.AnalysisResult)
}
