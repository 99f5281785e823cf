package jobqueue

import (
	"context"

	"Website_Analysis/internal/models"
)

// Service defines the interface for the background job queue
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Submit enqueues a batch analysis job and returns its identifier.
	// Jobs with priority >= 3 jump ahead of the regular FIFO queue.
	Submit(ctx context.Context, req *models.JobRequest) (string, error)

	// GetJob returns a snapshot of the job with the given ID
	GetJob(jobID string) (*models.Job, error)

	// Stats returns a read-only snapshot of queue and worker state
	Stats() models.QueueStats

	// Start launches the worker pool
	Start()

	// Stop cancels all workers and waits for them to drain
	Stop()
}
