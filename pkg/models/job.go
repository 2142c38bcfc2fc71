package models

import (
	"time"
)

// JobStatus is the lifecycle state of a scrape job as reported by the back end.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ScrapeJob is a snapshot of a server-side scrape task. Numeric fields default
// to zero when the server omits them; older entries carry a single URL scalar
// instead of the URLs array.
type ScrapeJob struct {
	ID            string     `json:"id"`
	Status        JobStatus  `json:"status"`
	URLs          []string   `json:"urls,omitempty"`
	URL           string     `json:"url,omitempty"` // legacy single-URL entries
	TotalURLs     int        `json:"totalUrls"`
	ProcessedURLs int        `json:"processedUrls"`
	Progress      int        `json:"progress"`
	JobCount      int        `json:"jobCount"`
	ErrorMessage  string     `json:"errorMessage,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// IsTerminal reports whether the job has reached a final state.
func (j *ScrapeJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// NormalizedStatus maps unrecognized status values to pending so that unknown
// states never break rendering.
func (j *ScrapeJob) NormalizedStatus() JobStatus {
	switch j.Status {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return j.Status
	default:
		return JobStatusPending
	}
}

// AllURLs returns the input URLs of the job, falling back to the legacy scalar
// field when the array is absent.
func (j *ScrapeJob) AllURLs() []string {
	if len(j.URLs) > 0 {
		return j.URLs
	}
	if j.URL != "" {
		return []string{j.URL}
	}
	return nil
}

// PrimaryURL returns the first input URL, or an empty string for a job with no
// recorded URLs.
func (j *ScrapeJob) PrimaryURL() string {
	if len(j.URLs) > 0 {
		return j.URLs[0]
	}
	return j.URL
}

// URLOverflow returns how many URLs beyond the first the job carries.
func (j *ScrapeJob) URLOverflow() int {
	if len(j.URLs) > 1 {
		return len(j.URLs) - 1
	}
	return 0
}

// UploadRequest is the payload for starting a batch scrape.
type UploadRequest struct {
	URLs []string `json:"urls" binding:"required,min=1,dive,required"`
}

// UploadResponse is the immediate response from the upload endpoint.
type UploadResponse struct {
	JobID string `json:"jobId"`
}

// StatusResponse wraps a single job snapshot from the status endpoint.
type StatusResponse struct {
	Job *ScrapeJob `json:"job"`
}

// JobsResponse wraps the job history listing.
type JobsResponse struct {
	Jobs []ScrapeJob `json:"jobs"`
}

// JobDetailResponse is the result of resolving a source URL to a local
// job-posting id.
type JobDetailResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		ID string `json:"_id"`
	} `json:"data,omitempty"`
}
