package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"Website_Analysis/internal/domainAnalysis"
	"Website_Analysis/internal/fetcher"
	"Website_Analysis/internal/jobqueue"
	"Website_Analysis/internal/logger"
	"Website_Analysis/internal/models"
	"Website_Analysis/internal/ratelimit"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	analysisService domainAnalysis.AnalysisService
	jobQueue        jobqueue.Service
	fetchLimiter    ratelimit.FetchService
	pool            *fetcher.ConnectionPool
	logger          logger.Service

	maxDomainsPerRequest int
	defaultTimeout       time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	analysisService domainAnalysis.AnalysisService,
	jobQueue jobqueue.Service,
	fetchLimiter ratelimit.FetchService,
	pool *fetcher.ConnectionPool,
	logger logger.Service,
	maxDomainsPerRequest int,
	defaultTimeout time.Duration,
) *Handler {
	return &Handler{
		analysisService:      analysisService,
		jobQueue:             jobQueue,
		fetchLimiter:         fetchLimiter,
		pool:                 pool,
		logger:               logger,
		maxDomainsPerRequest: maxDomainsPerRequest,
		defaultTimeout:       defaultTimeout,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// BatchAnalysisResponse wraps the results of a multi-domain analysis
type BatchAnalysisResponse struct {
	Total   int                      `json:"total"`
	Results []*models.AnalysisResult `json:"results"`
}

// JobSubmitResponse is returned on successful job submission
type JobSubmitResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JobStatusResponse reports a job's progress without its result payload
type JobStatusResponse struct {
	JobID            string     `json:"job_id"`
	Status           string     `json:"status"`
	TotalDomains     int        `json:"total_domains"`
	ProcessedDomains int        `json:"processed_domains"`
	CreatedAt        time.Time  `json:"created_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	Error            string     `json:"error,omitempty"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errMsg, detail string) {
	_ = h.writeJSONResponse(w, r, statusCode, ErrorResponse{
		Error:     errMsg,
		Message:   detail,
		Timestamp: time.Now().UTC(),
	})
}

// decodeAnalysisRequest parses and validates the shared request shape
func (h *Handler) decodeAnalysisRequest(w http.ResponseWriter, r *http.Request, operation string) (*models.AnalysisRequest, bool) {
	var request models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(r.Context(), operation, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if len(request.Domains) == 0 {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "domains array cannot be empty", "")
		return nil, false
	}

	if len(request.Domains) > h.maxDomainsPerRequest {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "too many domains",
			fmt.Sprintf("Maximum %d domains per request", h.maxDomainsPerRequest))
		return nil, false
	}

	return &request, true
}

func (h *Handler) analysisOptions(request *models.AnalysisRequest) domainAnalysis.Options {
	timeout := h.defaultTimeout
	if request.TimeoutSec > 0 {
		timeout = time.Duration(request.TimeoutSec) * time.Second
	}
	return domainAnalysis.Options{
		Timeout:       timeout,
		BatchSize:     request.BatchSize,
		EmailPriority: request.EmailPriority,
	}
}

// AnalyzeDomains handles POST /api/analyze
func (h *Handler) AnalyzeDomains(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, ok := h.decodeAnalysisRequest(w, r, logger.OpBatchAnalysis)
	if !ok {
		return
	}

	h.logger.LogInfo(ctx, logger.OpBatchAnalysis,
		fmt.Sprintf("Starting analysis for %d domains", len(request.Domains)), map[string]interface{}{
			"domains_count": len(request.Domains),
		})

	results := h.analysisService.AnalyzeDomains(ctx, request.Domains, h.analysisOptions(request))

	response := BatchAnalysisResponse{
		Total:   len(results),
		Results: results,
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpBatchAnalysis, "", "Failed to encode response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpBatchAnalysis, "",
		fmt.Sprintf("Completed analysis of %d domains", len(results)), nil)
}

// AnalyzeDomainsSequential handles POST /api/analyze-batch
func (h *Handler) AnalyzeDomainsSequential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, ok := h.decodeAnalysisRequest(w, r, logger.OpBatchAnalysis)
	if !ok {
		return
	}

	h.logger.LogInfo(ctx, logger.OpBatchAnalysis,
		fmt.Sprintf("Starting sequential analysis for %d domains", len(request.Domains)), map[string]interface{}{
			"domains_count": len(request.Domains),
		})

	results := h.analysisService.AnalyzeDomainsSequential(ctx, request.Domains, h.analysisOptions(request))

	response := BatchAnalysisResponse{
		Total:   len(results),
		Results: results,
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpBatchAnalysis, "", "Failed to encode response", err, models.LogSeverityLow, nil)
	}
}

// SubmitJob handles POST /api/jobs
func (h *Handler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpJobSubmit, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(request.Domains) == 0 {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "domains array cannot be empty", "")
		return
	}

	jobID, err := h.jobQueue.Submit(ctx, &request)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrQueueFull):
			h.writeErrorResponse(w, r, http.StatusServiceUnavailable, "queue full", "The job queue is at capacity, try again later")
		case errors.Is(err, models.ErrQueueStopped):
			h.writeErrorResponse(w, r, http.StatusServiceUnavailable, "queue stopped", "The job queue is shutting down")
		default:
			h.writeErrorResponse(w, r, http.StatusInternalServerError, "job submission failed", err.Error())
		}
		return
	}

	_ = h.writeJSONResponse(w, r, http.StatusAccepted, JobSubmitResponse{
		JobID:   jobID,
		Status:  string(models.JobQueued),
		Message: fmt.Sprintf("Job accepted with %d domains", len(request.Domains)),
	})
}

// JobStatus handles GET /api/jobs/{jobID}/status
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobID"]

	job, err := h.jobQueue.GetJob(jobID)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusNotFound, "job not found", jobID)
		return
	}

	_ = h.writeJSONResponse(w, r, http.StatusOK, JobStatusResponse{
		JobID:            job.ID,
		Status:           string(job.Status),
		TotalDomains:     job.TotalDomains,
		ProcessedDomains: job.ProcessedDomains,
		CreatedAt:        job.CreatedAt,
		StartedAt:        job.StartedAt,
		CompletedAt:      job.CompletedAt,
		Error:            job.Error,
	})
}

// JobResults handles GET /api/jobs/{jobID}/results
func (h *Handler) JobResults(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobID"]

	job, err := h.jobQueue.GetJob(jobID)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusNotFound, "job not found", jobID)
		return
	}

	// Full results are only available once the job finishes
	if job.Status != models.JobCompleted {
		_ = h.writeJSONResponse(w, r, http.StatusOK, map[string]interface{}{
			"job_id":  job.ID,
			"status":  string(job.Status),
			"message": fmt.Sprintf("Job is %s, results not available yet", job.Status),
		})
		return
	}

	_ = h.writeJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"job_id":  job.ID,
		"status":  string(job.Status),
		"total":   job.TotalDomains,
		"results": job.Results,
	})
}

// QueueStats handles GET /api/queue/stats
func (h *Handler) QueueStats(w http.ResponseWriter, r *http.Request) {
	_ = h.writeJSONResponse(w, r, http.StatusOK, h.jobQueue.Stats())
}

// Performance handles GET /api/performance
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	_ = h.writeJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"rate_limiter":    h.fetchLimiter.Snapshot(),
		"connection_pool": h.pool.Snapshot(),
		"queue":           h.jobQueue.Stats(),
		"timestamp":       time.Now().UTC(),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.logger.LogInfo(r.Context(), logger.OpHealthCheck, "Health check requested", nil)

	_ = h.writeJSONResponse(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	})
}
