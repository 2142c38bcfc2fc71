package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"itworks-go/pkg/models"

	"github.com/google/uuid"
)

// ScrapeService is the in-memory scrape pipeline of the development back end.
// It accepts URL batches, walks each job through pending -> processing ->
// completed on a timer, and records which posting ids were extracted from
// which source URL. State lives for the lifetime of the process only.
type ScrapeService struct {
	mu       sync.RWMutex
	jobs     map[string]*models.ScrapeJob
	order    []string          // job ids, newest first
	postings map[string]string // source URL -> local posting id

	stepDelay      time.Duration
	postingsPerURL int
}

// NewScrapeService creates the simulated pipeline. stepDelay is the time spent
// per URL; postingsPerURL is how many postings each URL "extracts".
func NewScrapeService(stepDelay time.Duration, postingsPerURL int) *ScrapeService {
	if stepDelay <= 0 {
		stepDelay = 2 * time.Second
	}
	if postingsPerURL <= 0 {
		postingsPerURL = 3
	}
	return &ScrapeService{
		jobs:           make(map[string]*models.ScrapeJob),
		postings:       make(map[string]string),
		stepDelay:      stepDelay,
		postingsPerURL: postingsPerURL,
	}
}

// Submit registers a new scrape job for the given URLs and starts processing
// it in the background. Returns the job id.
func (s *ScrapeService) Submit(urls []string) string {
	now := time.Now()
	job := &models.ScrapeJob{
		ID:        uuid.NewString(),
		Status:    models.JobStatusPending,
		URLs:      append([]string(nil), urls...),
		TotalURLs: len(urls),
		CreatedAt: &now,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.order = append([]string{job.ID}, s.order...)
	s.mu.Unlock()

	go s.run(job.ID)

	return job.ID
}

// run advances a job through its lifecycle. URLs containing "fail" abort the
// job with an error, which lets the failure path be exercised locally.
func (s *ScrapeService) run(id string) {
	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	job.Status = models.JobStatusProcessing
	urls := append([]string(nil), job.URLs...)
	s.mu.Unlock()

	for i, u := range urls {
		time.Sleep(s.stepDelay)

		if strings.Contains(u, "fail") {
			now := time.Now()
			s.mu.Lock()
			if job, ok := s.jobs[id]; ok {
				job.Status = models.JobStatusFailed
				job.ErrorMessage = fmt.Sprintf("Không thể tải trang: %s", u)
				job.CompletedAt = &now
			}
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		if job, ok := s.jobs[id]; ok {
			job.ProcessedURLs = i + 1
			job.Progress = (i + 1) * 100 / len(urls)
			job.JobCount += s.postingsPerURL
			s.postings[u] = uuid.NewString()
		}
		s.mu.Unlock()
	}

	now := time.Now()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = models.JobStatusCompleted
		job.CompletedAt = &now
	}
	s.mu.Unlock()
}

// Get returns a snapshot of one job.
func (s *ScrapeService) Get(id string) (*models.ScrapeJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	snapshot := *job
	snapshot.URLs = append([]string(nil), job.URLs...)
	return &snapshot, true
}

// List returns snapshots of all jobs, newest first.
func (s *ScrapeService) List() []models.ScrapeJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]models.ScrapeJob, 0, len(s.order))
	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok {
			snapshot := *job
			snapshot.URLs = append([]string(nil), job.URLs...)
			jobs = append(jobs, snapshot)
		}
	}
	return jobs
}

// Delete removes a job from the history. The background runner, if still
// going, finds the job gone and stops mutating it.
func (s *ScrapeService) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// LookupPosting resolves a source URL to the id of a posting extracted from it.
func (s *ScrapeService) LookupPosting(url string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.postings[url]
	return id, ok
}
