package adminjobs

import (
	"itworks-go/pkg/models"
)

// API is the slice of the scrape back end the admin console needs. The HTTP
// client implements it; tests substitute fakes.
type API interface {
	UploadURLs(urls []string) (string, error)
	JobStatus(jobID string) (*models.ScrapeJob, error)
	ListJobs() ([]models.ScrapeJob, error)
	DeleteJob(jobID string) error
	LookupJobURL(rawURL string) (string, error)
}

// JobsLoadedMsg is emitted when the job history has been fetched
type JobsLoadedMsg struct {
	Jobs []models.ScrapeJob
	Err  error
}

// SubmitResultMsg is emitted when a batch upload resolves
type SubmitResultMsg struct {
	JobID    string
	URLCount int
	Err      error
}

// PollTickMsg fires when the poll timer elapses. Gen identifies the tracking
// handle the timer belongs to; a stale Gen means the handle was replaced or
// cleared and the tick must do nothing.
type PollTickMsg struct {
	Gen int
}

// PollResultMsg carries one status snapshot (or a transient poll error).
type PollResultMsg struct {
	Gen   int
	JobID string
	Job   *models.ScrapeJob
	Err   error
}

// ToastExpiredMsg fires when a toast's dismissal timer elapses. A stale Gen
// means a newer toast replaced the one this timer was armed for.
type ToastExpiredMsg struct {
	Gen int
}

// DeleteResultMsg is emitted when a history-entry delete resolves
type DeleteResultMsg struct {
	JobID string
	Err   error
}

// DetailResolvedMsg is emitted when a source URL has been resolved to a local
// job-posting id (LocalID is empty when the server found no match).
type DetailResolvedMsg struct {
	SourceURL string
	LocalID   string
	Err       error
}
