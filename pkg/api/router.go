package api

import (
	"itworks-go/pkg/api/handlers"
	"itworks-go/pkg/api/middleware"
	"itworks-go/pkg/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(scrapeService *services.ScrapeService) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// API routes
	api := router.Group("/api")
	{
		scrape := api.Group("/scrape")
		{
			scrape.POST("/upload", handlers.UploadJobs(scrapeService))
			scrape.GET("/status/:id", handlers.JobStatus(scrapeService))
			scrape.GET("/jobs", handlers.ListJobs(scrapeService))
			scrape.DELETE("/jobs/:id", handlers.DeleteJob(scrapeService))
		}

		api.GET("/jobDetail", handlers.JobDetail(scrapeService))
	}

	return router
}
