package mocks

import (
	"context"
	"time"

	"Website_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of fetcher.Service
type MockFetcher struct {
	mock.Mock
}

// Fetch mocks the Fetch method of fetcher.Service
func (m *MockFetcher) Fetch(ctx context.Context, domain string, timeout time.Duration) *models.FetchResult {
	args := m.Called(ctx, domain, timeout)
	return args.Get(0).(*models.FetchResult)
}

// FetchURL mocks the FetchURL method of fetcher.Service
func (m *MockFetcher) FetchURL(ctx context.Context, url string, timeout time.Duration) *models.FetchResult {
	args := m.Called(ctx, url, timeout)
	return args.Get(0).(*models.FetchResult)
}
