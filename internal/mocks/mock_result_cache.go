package mocks

import (
	"context"
	"time"

	"Website_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockResultCache is a mock implementation of resultCache.Service
type MockResultCache struct {
	mock.Mock
}

// Get mocks the Get method of resultCache.Service
func (m *MockResultCache) Get(ctx context.Context, domain string) (*models.AnalysisResult, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}

// Set mocks the Set method of resultCache.Service
func (m *MockResultCache) Set(ctx context.Context, domain string, result *models.AnalysisResult, ttl time.Duration) error {
	args := m.Called(ctx, domain, result, ttl)
	return args.Error(0)
}

// Delete mocks the Delete method of resultCache.Service
func (m *MockResultCache) Delete(ctx context.Context, domain string) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}
