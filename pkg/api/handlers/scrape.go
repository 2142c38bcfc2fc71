package handlers

import (
	"net/http"

	"itworks-go/pkg/models"
	"itworks-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadJobs starts a batch scrape and returns the new job id.
func UploadJobs(service *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		jobID := service.Submit(req.URLs)
		c.JSON(http.StatusOK, models.UploadResponse{JobID: jobID})
	}
}

// JobStatus returns the current snapshot of one scrape job.
func JobStatus(service *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := service.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		c.JSON(http.StatusOK, models.StatusResponse{Job: job})
	}
}

// ListJobs returns the scrape-job history, newest first.
func ListJobs(service *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.JobsResponse{Jobs: service.List()})
	}
}

// DeleteJob removes one history entry.
func DeleteJob(service *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.Delete(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
	}
}

// JobDetail resolves a scraped source URL to a local posting id. A missing
// match is not an HTTP error; the body carries success=false.
func JobDetail(service *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawURL := c.Query("url")
		if rawURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
			return
		}

		id, ok := service.LookupPosting(rawURL)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"_id": id},
		})
	}
}
