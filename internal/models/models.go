package models

import (
	"time"
)

// FetchResult represents the outcome of a single page fetch
type FetchResult struct {
	Content    string            `json:"content"`
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	FinalURL   string            `json:"url"`
	IsHTTPS    bool              `json:"is_https"`
	Error      string            `json:"error,omitempty"`
}

// Failed reports whether the fetch exhausted all candidate URLs
func (f *FetchResult) Failed() bool {
	return f.Error != ""
}

// ContactPage is a contact-like link discovered on a page
type ContactPage struct {
	URL      string `json:"url"`
	LinkText string `json:"linkText"`
}

// AnalysisResult represents the complete analysis of a single domain
type AnalysisResult struct {
	Domain             string              `json:"domain"`
	Platform           string              `json:"platform"`
	Purpose            string              `json:"purpose"`
	IsHTTPS            string              `json:"isHttps"`
	HasHSTS            string              `json:"hasHSTS"`
	HasCSP             string              `json:"hasCSP"`
	HasXFrameOptions   string              `json:"hasXFrameOptions"`
	HasTitle           string              `json:"hasTitle"`
	TitleLength        int                 `json:"titleLength"`
	TitleOptimal       string              `json:"titleOptimal"`
	HasDescription     string              `json:"hasDescription"`
	DescriptionLength  int                 `json:"descriptionLength"`
	DescriptionOptimal string              `json:"descriptionOptimal"`
	HasH1              string              `json:"hasH1"`
	H1Count            int                 `json:"h1Count"`
	HasH2              string              `json:"hasH2"`
	HasViewport        string              `json:"hasViewport"`
	HasCanonical       string              `json:"hasCanonical"`
	HasRobots          string              `json:"hasRobots"`
	HasStructuredData  string              `json:"hasStructuredData"`
	HasOpenGraph       string              `json:"hasOpenGraph"`
	HasTwitterCard     string              `json:"hasTwitterCard"`
	HasLazyLoading     string              `json:"hasLazyLoading"`
	HasPreload         string              `json:"hasPreload"`
	HasAltTags         string              `json:"hasAltTags"`
	HasLang            string              `json:"hasLang"`
	Emails             []string            `json:"emails"`
	EmailCount         int                 `json:"emailCount"`
	Phones             []string            `json:"phones"`
	PhoneCount         int                 `json:"phoneCount"`
	ContactPages       []ContactPage       `json:"contactPages"`
	ContactPageCount   int                 `json:"contactPageCount"`
	HasContactPage     string              `json:"hasContactPage"`
	SocialLinks        map[string][]string `json:"socialLinks"`
	TotalSocialLinks   int                 `json:"totalSocialLinks"`
	HasFacebook        string              `json:"hasFacebook"`
	HasTwitter         string              `json:"hasTwitter"`
	HasLinkedin        string              `json:"hasLinkedin"`
	HasInstagram       string              `json:"hasInstagram"`
	HasYoutube         string              `json:"hasYoutube"`
	HasPinterest       string              `json:"hasPinterest"`
	HasTiktok          string              `json:"hasTiktok"`
	HasWhatsapp        string              `json:"hasWhatsapp"`
	SEOScore           int                 `json:"seoScore"`
	SEOGrade           string              `json:"seoGrade"`
	Status             string              `json:"status"`
	Cached             bool                `json:"cached"`
	AnalyzedAt         time.Time           `json:"analyzedAt"`
	Error              string              `json:"error,omitempty"`
}

// Analysis status values
const (
	StatusActive         = "Active"
	StatusError          = "Error"
	StatusAnalysisFailed = "Analysis Failed"
)

// AnalysisRequest is the body of the synchronous analysis endpoints
type AnalysisRequest struct {
	Domains       []string `json:"domains"`
	BatchSize     int      `json:"batch_size,omitempty"`
	TimeoutSec    int      `json:"timeout,omitempty"`
	EmailPriority []string `json:"email_priority,omitempty"`
}

// JobRequest is the body of the job submission endpoint
type JobRequest struct {
	Domains       []string `json:"domains"`
	BatchSize     int      `json:"batch_size,omitempty"`
	TimeoutSec    int      `json:"timeout,omitempty"`
	Priority      int      `json:"priority,omitempty"`
	EmailPriority []string `json:"email_priority,omitempty"`
}

// JobState represents the lifecycle state of a background job.
// Transitions only move forward: queued -> processing -> completed|failed.
type JobState string

const (
	JobQueued     JobState = "queued"
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// Job tracks a background batch analysis. After a worker claims a job it is
// the only writer; the job-table mutex guards only the map itself.
type Job struct {
	ID               string            `json:"job_id"`
	Status           JobState          `json:"status"`
	TotalDomains     int               `json:"total_domains"`
	ProcessedDomains int               `json:"processed_domains"`
	Results          []*AnalysisResult `json:"results"`
	CreatedAt        time.Time         `json:"created_at"`
	StartedAt        *time.Time        `json:"started_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// QueueStats is a read-only snapshot of the worker queue
type QueueStats struct {
	ActiveWorkers         int     `json:"active_workers"`
	TotalWorkers          int     `json:"total_workers"`
	QueuedJobs            int     `json:"queued_jobs"`
	ActiveJobs            int     `json:"active_jobs"`
	QueueSize             int     `json:"queue_size"`
	PriorityQueueSize     int     `json:"priority_queue_size"`
	TotalJobs             int     `json:"total_jobs"`
	JobsProcessed         int     `json:"jobs_processed"`
	JobsFailed            int     `json:"jobs_failed"`
	TotalDomainsProcessed int     `json:"total_domains_processed"`
	AverageProcessingTime float64 `json:"average_processing_time"`
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
