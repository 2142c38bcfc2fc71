package client

import (
	"fmt"
	"net/http"
	"net/url"

	"itworks-go/pkg/models"
)

// UploadURLs submits a batch of URLs for scraping and returns the id of the
// job the back end created for it.
func (c *Client) UploadURLs(urls []string) (string, error) {
	var resp models.UploadResponse
	req := models.UploadRequest{URLs: urls}
	if err := c.doJSONRequest(http.MethodPost, "/api/scrape/upload", req, &resp); err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("upload response missing jobId")
	}
	return resp.JobID, nil
}

// JobStatus fetches the current snapshot of a scrape job.
func (c *Client) JobStatus(jobID string) (*models.ScrapeJob, error) {
	var resp models.StatusResponse
	path := fmt.Sprintf("/api/scrape/status/%s", url.PathEscape(jobID))
	if err := c.doGetRequest(path, &resp); err != nil {
		return nil, err
	}
	if resp.Job == nil {
		return nil, fmt.Errorf("status response missing job")
	}
	return resp.Job, nil
}

// ListJobs retrieves the recent scrape-job history.
func (c *Client) ListJobs() ([]models.ScrapeJob, error) {
	var resp models.JobsResponse
	if err := c.doGetRequest("/api/scrape/jobs", &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// DeleteJob removes a job from the server-side history.
func (c *Client) DeleteJob(jobID string) error {
	path := fmt.Sprintf("/api/scrape/jobs/%s", url.PathEscape(jobID))
	return c.doDeleteRequest(path)
}

// LookupJobURL resolves a scraped source URL to the id of the local job
// posting extracted from it. Returns an empty id when the server has no match.
func (c *Client) LookupJobURL(rawURL string) (string, error) {
	var resp models.JobDetailResponse
	path := fmt.Sprintf("/api/jobDetail?url=%s", url.QueryEscape(rawURL))
	if err := c.doGetRequest(path, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.Data == nil || resp.Data.ID == "" {
		return "", nil
	}
	return resp.Data.ID, nil
}
