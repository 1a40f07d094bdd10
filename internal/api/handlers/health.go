package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talentboard/internal/llm"
	"talentboard/internal/logging"
	"talentboard/internal/storage"
	"talentboard/pkg/models"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.LogWithRequestID(requestID(c))
	logger.Debug("Health check requested")

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether dependencies are ready to serve.
func ReadinessHandler(store *storage.Store, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.LogWithRequestID(requestID(c))
		logger.Debug("Readiness check requested")

		checks := map[string]string{"api": "ok"}
		status := "ready"
		code := http.StatusOK

		if err := store.Ping(c.Request().Context()); err != nil {
			checks["database"] = "unavailable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}

		if llmManager.IsHealthy() {
			checks["llm"] = "ok"
		} else {
			// Scoring degrades but listings still work without the LLM
			checks["llm"] = "unavailable"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status
func StatusHandler(llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api": "operational",
		}
		if llmManager.IsHealthy() {
			checks["llm"] = "operational"
		} else {
			checks["llm"] = "degraded"
		}

		response := models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(http.StatusOK, response)
	}
}
