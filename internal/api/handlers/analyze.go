package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"talentboard/internal/analyzer"
	"talentboard/internal/storage"
	"talentboard/pkg/models"
	"talentboard/pkg/utils"

	"talentboard/internal/logging"
)

var validate = validator.New()

// AnalyzeHandler handles candidate scoring requests. The model call and
// the persistence write happen synchronously; a persistence failure
// after a successful model call still returns the analysis so the caller
// can retry the save without another model call.
func AnalyzeHandler(svc *analyzer.Analyzer) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		logger.Info("Analyze request received")

		var req models.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success:   false,
				Error:     "Invalid request format",
				RequestID: requestID,
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success:   false,
				Error:     err.Error(),
				RequestID: requestID,
			})
		}

		analysis, err := svc.Analyze(c.Request().Context(), &req)
		if err != nil {
			var saveErr *analyzer.SaveError
			if errors.As(err, &saveErr) {
				// Scored but not saved: hand the analysis back so the
				// caller can retry persistence only.
				logger.Error("Analysis completed but persistence failed", map[string]interface{}{
					"application_id": req.ApplicationID,
					"error":          saveErr.Err.Error(),
				})
				return c.JSON(http.StatusInternalServerError, models.AnalyzeResponse{
					Success:   false,
					Analysis:  saveErr.Analysis,
					Error:     "analysis_not_saved",
					RequestID: requestID,
				})
			}

			status := http.StatusInternalServerError
			var customErr *utils.CustomError
			if errors.As(err, &customErr) {
				status = customErr.Code
			}

			logger.Error("Analyze request failed", map[string]interface{}{
				"application_id": req.ApplicationID,
				"error":          err.Error(),
			})
			return c.JSON(status, models.AnalyzeResponse{
				Success:   false,
				Error:     err.Error(),
				RequestID: requestID,
			})
		}

		logger.Info("Analyze request completed", map[string]interface{}{
			"application_id":  req.ApplicationID,
			"score":           analysis.Score,
			"processing_time": time.Since(startTime),
		})

		return c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success:        true,
			Analysis:       analysis,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		})
	}
}

// SaveAnalysisHandler retries persistence of a completed analysis,
// avoiding a redundant model call after a failed save.
func SaveAnalysisHandler(svc *analyzer.Analyzer) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		applicationID := c.Param("id")

		var req models.SaveAnalysisRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		analysis := &models.Analysis{
			ApplicationID:  applicationID,
			Score:          req.Score,
			Strengths:      req.Strengths,
			Improvements:   req.Improvements,
			Recommendation: req.Recommendation,
			Feedback:       req.Feedback,
		}

		if err := svc.SaveAnalysis(c.Request().Context(), analysis); err != nil {
			status := http.StatusInternalServerError
			errorCode := "save_failed"
			if errors.Is(err, storage.ErrNotFound) {
				status = http.StatusNotFound
				errorCode = "application_not_found"
			}
			logger.Error("Saving analysis failed", map[string]interface{}{
				"application_id": applicationID,
				"error":          err.Error(),
			})
			return c.JSON(status, models.ErrorResponse{
				Error:     errorCode,
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success:   true,
			Analysis:  analysis,
			RequestID: requestID,
		})
	}
}

// requestID returns the request ID set by the validation middleware,
// generating one when the middleware did not run.
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}
