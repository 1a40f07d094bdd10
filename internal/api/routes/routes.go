package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"talentboard/internal/analyzer"
	"talentboard/internal/api/handlers"
	"talentboard/internal/api/middleware"
	"talentboard/internal/config"
	"talentboard/internal/llm"
	"talentboard/internal/ranking"
	"talentboard/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, store *storage.Store, llmManager *llm.Manager, analyzerSvc *analyzer.Analyzer, rankingSvc *ranking.Service) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// 30s for most endpoints, 2 minutes for the model-bound analyze endpoint
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	analyzeLimiter := middleware.NewRateLimiter(cfg.RateLimit.AnalyzePerMinute, cfg.RateLimit.Burst)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(store, llmManager))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(llmManager))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Job postings and applications
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", handlers.CreateJobHandler(store))
			jobs.GET("/:id", handlers.GetJobHandler(store))
			jobs.POST("/:id/applications", handlers.CreateApplicationHandler(store))
		}

		// Candidate scoring
		applications := v1.Group("/applications")
		{
			applications.POST("/analyze", handlers.AnalyzeHandler(analyzerSvc), analyzeLimiter.Middleware())
			applications.PUT("/:id/analysis", handlers.SaveAnalysisHandler(analyzerSvc))
			applications.PATCH("/:id/status", handlers.UpdateStatusHandler(store, rankingSvc))
		}

		// Employer-facing ranking and aggregation
		employers := v1.Group("/employers")
		{
			employers.GET("/:id/applicants", handlers.BestApplicantsHandler(rankingSvc))
			employers.GET("/:id/summary", handlers.SummaryHandler(rankingSvc))
			employers.POST("/:id/refresh", handlers.RefreshHandler(rankingSvc))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "Talentboard Core",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
