package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// ListJobs prints the scrape-job history as a table.
func (a *App) ListJobs() {
	apiClient, err := a.getClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jobs, err := apiClient.ListJobs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching jobs: %v\n", err)
		os.Exit(1)
	}

	if len(jobs) == 0 {
		fmt.Println("No scrape jobs found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tStatus\tURLs\tPostings\tCreated")
	fmt.Fprintln(w, "───\t───\t───\t───\t───")

	for i := range jobs {
		job := &jobs[i]

		id := job.ID
		if len(id) > 8 {
			id = id[:8] + "..."
		}

		url := job.PrimaryURL()
		if len(url) > 50 {
			url = url[:47] + "..."
		}
		if n := job.URLOverflow(); n > 0 {
			url = fmt.Sprintf("%s +%d more", url, n)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			id,
			job.NormalizedStatus(),
			url,
			job.JobCount,
			formatTime(job.CreatedAt),
		)
	}

	w.Flush()
	fmt.Printf("\nTotal: %d job(s)\n", len(jobs))
}

// DeleteJob removes one history entry by id.
func (a *App) DeleteJob(jobID string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	if err := apiClient.DeleteJob(jobID); err != nil {
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}

	fmt.Printf("Deleted job %s\n", jobID)
	return nil
}
