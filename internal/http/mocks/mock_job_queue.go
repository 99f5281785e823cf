package mocks

import (
	"context"

	"Website_Analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobqueue.Service
type MockJobQueue struct {
	mock.Mock
}

// Submit mocks the Submit method of jobqueue.Service
func (m *MockJobQueue) Submit(ctx context.Context, req *models.JobRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// GetJob mocks the GetJob method of jobqueue.Service
func (m *MockJobQueue) GetJob(jobID string) (*models.Job, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

// Stats mocks the Stats method of jobqueue.Service
func (m *MockJobQueue) Stats() models.QueueStats {
	args := m.Called()
	return args.Get(0).(models.QueueStats)
}

// Start mocks the Start method of jobqueue.Service
func (m *MockJobQueue) Start() {
	m.Called()
}

// Stop mocks the Stop method of jobqueue.Service
func (m *MockJobQueue) Stop() {
	m.Called()
}
