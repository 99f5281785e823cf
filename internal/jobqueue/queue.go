package jobqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"Website_Analysis/internal/domainAnalysis"
	"Website_Analysis/internal/logger"
	"Website_Analysis/internal/models"
)

// How long an idle worker waits on the FIFO queue before re-checking the
// priority deque and shutdown signal
const dequeuePoll = 1 * time.Second

// highPriorityThreshold marks the priority value at which a job skips the
// FIFO queue
const highPriorityThreshold = 3

// jobEntry pairs a job with the analysis options it was submitted with
type jobEntry struct {
	job       *models.Job
	domains   []string
	batchSize int
	opts      domainAnalysis.Options
}

// WorkerQueue implements Service with a fixed pool of worker goroutines.
// High-priority jobs go to the front of a deque so the newest urgent job
// is picked up first; everything else flows through a bounded FIFO channel.
type WorkerQueue struct {
	analyzer domainAnalysis.AnalysisService
	logger   logger.Service

	maxWorkers   int
	maxQueueSize int
	defaultBatch int
	maxBatch     int

	fifo chan *jobEntry

	priorityMu sync.Mutex
	priority   []*jobEntry

	jobsMu sync.RWMutex
	jobs   map[string]*jobEntry

	statsMu               sync.Mutex
	activeWorkers         int
	jobsProcessed         int
	jobsFailed            int
	totalDomainsProcessed int
	avgProcessingTime     float64

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewWorkerQueue creates a worker queue. Call Start to launch the workers.
func NewWorkerQueue(analyzer domainAnalysis.AnalysisService, appLogger logger.Service, maxWorkers, maxQueueSize, defaultBatch, maxBatch int) *WorkerQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerQueue{
		analyzer:     analyzer,
		logger:       appLogger,
		maxWorkers:   maxWorkers,
		maxQueueSize: maxQueueSize,
		defaultBatch: defaultBatch,
		maxBatch:     maxBatch,
		fifo:         make(chan *jobEntry, maxQueueSize),
		jobs:         make(map[string]*jobEntry),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the worker pool
func (w *WorkerQueue) Start() {
	if w.started {
		return
	}
	w.started = true

	for i := 0; i < w.maxWorkers; i++ {
		w.wg.Add(1)
		go w.workerLoop(i)
	}

	w.logger.LogInfo(w.ctx, logger.OpWorkerLoop,
		fmt.Sprintf("Started %d queue workers", w.maxWorkers), map[string]interface{}{
			"max_workers":    w.maxWorkers,
			"max_queue_size": w.maxQueueSize,
		})
}

// Stop cancels all workers and waits for in-flight jobs to drain
func (w *WorkerQueue) Stop() {
	w.cancel()
	w.wg.Wait()
}

// Submit enqueues a new job and returns its ID
func (w *WorkerQueue) Submit(ctx context.Context, req *models.JobRequest) (string, error) {
	if err := w.ctx.Err(); err != nil {
		return "", models.ErrQueueStopped
	}

	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = w.defaultBatch
	}
	if batchSize > w.maxBatch {
		batchSize = w.maxBatch
	}

	var timeout time.Duration
	if req.TimeoutSec > 0 {
		timeout = time.Duration(req.TimeoutSec) * time.Second
	}

	entry := &jobEntry{
		job: &models.Job{
			ID:           uuid.New().String(),
			Status:       models.JobQueued,
			TotalDomains: len(req.Domains),
			Results:      make([]*models.AnalysisResult, 0, len(req.Domains)),
			CreatedAt:    time.Now().UTC(),
		},
		domains:   req.Domains,
		batchSize: batchSize,
		opts: domainAnalysis.Options{
			Timeout:       timeout,
			BatchSize:     batchSize,
			EmailPriority: req.EmailPriority,
		},
	}

	w.jobsMu.Lock()
	w.jobs[entry.job.ID] = entry
	w.jobsMu.Unlock()

	if req.Priority >= highPriorityThreshold {
		w.priorityMu.Lock()
		w.priority = append([]*jobEntry{entry}, w.priority...)
		w.priorityMu.Unlock()
	} else {
		select {
		case w.fifo <- entry:
		default:
			w.jobsMu.Lock()
			delete(w.jobs, entry.job.ID)
			w.jobsMu.Unlock()
			return "", models.ErrQueueFull
		}
	}

	w.logger.LogInfo(ctx, logger.OpJobSubmit,
		fmt.Sprintf("Submitted job %s with %d domains", entry.job.ID, len(req.Domains)), map[string]interface{}{
			"job_id":     entry.job.ID,
			"domains":    len(req.Domains),
			"batch_size": batchSize,
			"priority":   req.Priority,
		})

	return entry.job.ID, nil
}

// GetJob returns a copy of the job's current state
func (w *WorkerQueue) GetJob(jobID string) (*models.Job, error) {
	w.jobsMu.RLock()
	defer w.jobsMu.RUnlock()

	entry, ok := w.jobs[jobID]
	if !ok {
		return nil, models.ErrJobNotFound
	}

	snapshot := *entry.job
	snapshot.Results = append([]*models.AnalysisResult(nil), entry.job.Results...)
	return &snapshot, nil
}

// Stats returns a snapshot of queue occupancy and counters
func (w *WorkerQueue) Stats() models.QueueStats {
	w.priorityMu.Lock()
	prioritySize := len(w.priority)
	w.priorityMu.Unlock()

	w.jobsMu.RLock()
	totalJobs := len(w.jobs)
	activeJobs := 0
	for _, entry := range w.jobs {
		if entry.job.Status == models.JobProcessing {
			activeJobs++
		}
	}
	w.jobsMu.RUnlock()

	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	return models.QueueStats{
		ActiveWorkers:         w.activeWorkers,
		TotalWorkers:          w.maxWorkers,
		QueuedJobs:            len(w.fifo) + prioritySize,
		ActiveJobs:            activeJobs,
		QueueSize:             w.maxQueueSize,
		PriorityQueueSize:     prioritySize,
		TotalJobs:             totalJobs,
		JobsProcessed:         w.jobsProcessed,
		JobsFailed:            w.jobsFailed,
		TotalDomainsProcessed: w.totalDomainsProcessed,
		AverageProcessingTime: w.avgProcessingTime,
	}
}

// workerLoop is one long-running worker. It drains the priority deque
// before touching the FIFO queue and survives panics with a short backoff.
func (w *WorkerQueue) workerLoop(workerID int) {
	defer w.wg.Done()

	for {
		if w.ctx.Err() != nil {
			return
		}
		w.runOnce(workerID)
	}
}

// runOnce dequeues and processes at most one job
func (w *WorkerQueue) runOnce(workerID int) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.LogError(w.ctx, logger.OpWorkerLoop, fmt.Sprintf("worker-%d", workerID),
				"Worker recovered from panic", fmt.Errorf("panic: %v", r), models.LogSeverityHigh, nil)
			select {
			case <-w.ctx.Done():
			case <-time.After(1 * time.Second):
			}
		}
	}()

	entry := w.dequeue()
	if entry == nil {
		return
	}
	w.process(workerID, entry)
}

// dequeue returns the next job, or nil when none arrived within the poll
// window or the queue is shutting down
func (w *WorkerQueue) dequeue() *jobEntry {
	w.priorityMu.Lock()
	if len(w.priority) > 0 {
		entry := w.priority[0]
		w.priority = w.priority[1:]
		w.priorityMu.Unlock()
		return entry
	}
	w.priorityMu.Unlock()

	select {
	case entry := <-w.fifo:
		return entry
	case <-w.ctx.Done():
		return nil
	case <-time.After(dequeuePoll):
		return nil
	}
}

// process runs a single job to completion
func (w *WorkerQueue) process(workerID int, entry *jobEntry) {
	start := time.Now()

	w.statsMu.Lock()
	w.activeWorkers++
	w.statsMu.Unlock()
	defer func() {
		w.statsMu.Lock()
		w.activeWorkers--
		w.statsMu.Unlock()
	}()

	startedAt := start.UTC()
	w.jobsMu.Lock()
	entry.job.Status = models.JobProcessing
	entry.job.StartedAt = &startedAt
	w.jobsMu.Unlock()

	w.logger.LogInfo(w.ctx, logger.OpJobProcess,
		fmt.Sprintf("Worker %d processing job %s", workerID, entry.job.ID), map[string]interface{}{
			"job_id":  entry.job.ID,
			"domains": len(entry.domains),
		})

	err := w.runJob(entry)

	completedAt := time.Now().UTC()
	w.jobsMu.Lock()
	entry.job.CompletedAt = &completedAt
	if err != nil {
		entry.job.Status = models.JobFailed
		entry.job.Error = err.Error()
	} else {
		entry.job.Status = models.JobCompleted
	}
	processed := entry.job.ProcessedDomains
	w.jobsMu.Unlock()

	w.recordJobStats(err == nil, processed, time.Since(start).Seconds())

	if err != nil {
		w.logger.LogError(w.ctx, logger.OpJobProcess, entry.job.ID, "Job failed", err,
			models.LogSeverityMedium, nil)
		return
	}

	w.logger.LogSuccess(w.ctx, logger.OpJobProcess, entry.job.ID, "Job completed", map[string]interface{}{
		"domains":     processed,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// runJob fans the job's domains out with a per-job concurrency cap
func (w *WorkerQueue) runJob(entry *jobEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing job: %v", r)
		}
	}()

	sem := semaphore.NewWeighted(int64(entry.batchSize))
	resultsChan := make(chan *models.AnalysisResult, len(entry.domains))
	var wg sync.WaitGroup

	for _, domain := range entry.domains {
		wg.Add(1)
		go func(dom string) {
			defer wg.Done()

			if acquireErr := sem.Acquire(w.ctx, 1); acquireErr != nil {
				resultsChan <- &models.AnalysisResult{
					Domain:     dom,
					Status:     models.StatusError,
					Error:      "job cancelled",
					AnalyzedAt: time.Now().UTC(),
				}
				return
			}
			defer sem.Release(1)

			resultsChan <- w.analyzer.AnalyzeDomain(w.ctx, dom, entry.opts)
		}(domain)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for result := range resultsChan {
		w.jobsMu.Lock()
		entry.job.Results = append(entry.job.Results, result)
		entry.job.ProcessedDomains++
		w.jobsMu.Unlock()
	}

	if w.ctx.Err() != nil {
		return fmt.Errorf("queue shutting down: %w", w.ctx.Err())
	}

	return nil
}

// recordJobStats folds one finished job into the running aggregates
func (w *WorkerQueue) recordJobStats(succeeded bool, domains int, seconds float64) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	if succeeded {
		w.jobsProcessed++
	} else {
		w.jobsFailed++
	}
	w.totalDomainsProcessed += domains

	n := w.jobsProcessed + w.jobsFailed
	w.avgProcessingTime = (w.avgProcessingTime*float64(n-1) + seconds) / float64(n)
}
