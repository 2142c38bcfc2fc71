package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"itworks-go/pkg/models"
	"itworks-go/pkg/utils"
)

// HandleSubmitCommand submits a URL batch from a file ("-" for stdin) and
// polls the resulting job to a terminal state, printing progress. This is the
// headless counterpart of the console's submit-and-track flow.
func (a *App) HandleSubmitCommand(path string) error {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read URL list: %w", err)
	}

	urls := utils.ParseURLLines(string(raw))
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in input")
	}
	for _, u := range urls {
		if _, err := utils.ValidateURL(u); err != nil {
			return fmt.Errorf("bad URL %q: %w", u, err)
		}
	}

	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	fmt.Printf("⏳ Submitting %d URL(s)...\n", len(urls))
	jobID, err := apiClient.UploadURLs(urls)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	fmt.Printf("✓ Job %s accepted\n", jobID)

	interval := time.Duration(a.cfg.CLI.PollInterval) * time.Second
	if interval <= 0 {
		interval = 3 * time.Second
	}

	job, err := a.waitForJob(jobID, interval)
	if err != nil {
		return err
	}

	if job.Status == models.JobStatusFailed {
		reason := job.ErrorMessage
		if reason == "" {
			reason = "unknown error"
		}
		return fmt.Errorf("scrape job failed: %s", reason)
	}

	fmt.Printf("\n✓ Completed: collected %d job posting(s) from %d URL(s)\n", job.JobCount, job.TotalURLs)
	fmt.Printf("  Finished at: %s\n", formatTime(job.CompletedAt))
	return nil
}

// waitForJob polls the status endpoint until the job reaches a terminal
// state. Transient poll errors are reported but never stop the loop.
func (a *App) waitForJob(jobID string, interval time.Duration) (*models.ScrapeJob, error) {
	apiClient, err := a.getClient()
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := apiClient.JobStatus(jobID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "poll error (will retry): %v\n", err)
		} else if job.IsTerminal() {
			return job, nil
		} else if job.Status == models.JobStatusProcessing && job.TotalURLs > 0 {
			fmt.Printf("  %d/%d URL (%d%%)\n", job.ProcessedURLs, job.TotalURLs, job.Progress)
		}

		<-ticker.C
	}
}

// formatTime renders a nullable timestamp for table output.
func formatTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04")
}
