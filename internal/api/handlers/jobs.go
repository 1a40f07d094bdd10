package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talentboard/internal/logging"
	"talentboard/internal/ranking"
	"talentboard/internal/storage"
	"talentboard/pkg/models"
	"talentboard/pkg/utils"
)

// CreateJobHandler posts a new job for an employer.
func CreateJobHandler(store *storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.CreateJobRequest
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

		job := &models.Job{
			ID:          utils.GenerateEntityID(),
			EmployerID:  req.EmployerID,
			Title:       req.Title,
			Company:     req.Company,
			Location:    req.Location,
			Description: req.Description,
		}

		if err := store.CreateJob(c.Request().Context(), job); err != nil {
			logger.Error("Failed to create job", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "create_failed",
				Message:   "Could not create job",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Job created", map[string]interface{}{
			"job_id":      job.ID,
			"employer_id": job.EmployerID,
		})

		return c.JSON(http.StatusCreated, job)
	}
}

// GetJobHandler fetches a job by ID.
func GetJobHandler(store *storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)

		job, err := store.GetJob(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "job_not_found",
					Message:   "No job with that ID",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "lookup_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, job)
	}
}

// CreateApplicationHandler submits an application to a job. The scoring
// fields start zeroed; only a later scoring run fills them in.
func CreateApplicationHandler(store *storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		jobID := c.Param("id")
		if _, err := store.GetJob(c.Request().Context(), jobID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "job_not_found",
					Message:   "No job with that ID",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "lookup_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		var req models.CreateApplicationRequest
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

		// Marshal a missing skill list as [] rather than null so the
		// stored column always holds a JSON array.
		skills := []byte("[]")
		if req.Skills != nil {
			if data, err := json.Marshal(req.Skills); err == nil {
				skills = data
			}
		}

		app := &models.Application{
			ID:          utils.GenerateEntityID(),
			JobID:       jobID,
			UserID:      req.UserID,
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			ResumeURL:   req.ResumeURL,
			CoverLetter: req.CoverLetter,
			Skills:      skills,
			Experience:  req.Experience,
			Education:   req.Education,
			Status:      models.StatusNew,
		}

		if err := store.CreateApplication(c.Request().Context(), app); err != nil {
			logger.Error("Failed to create application", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "create_failed",
				Message:   "Could not create application",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Application created", map[string]interface{}{
			"application_id": app.ID,
			"job_id":         jobID,
		})

		return c.JSON(http.StatusCreated, app)
	}
}

// UpdateStatusHandler moves an application through the employer workflow.
// A successful update drops the owning employer's cached rankings so the
// next listing read reflects the change.
func UpdateStatusHandler(store *storage.Store, rankingSvc *ranking.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.UpdateStatusRequest
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

		applicationID := c.Param("id")
		if err := store.UpdateStatus(c.Request().Context(), applicationID, req.Status); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "application_not_found",
					Message:   "No application with that ID",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "update_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if employerID, err := store.EmployerForApplication(c.Request().Context(), applicationID); err == nil {
			if err := rankingSvc.Refresh(c.Request().Context(), employerID); err != nil {
				logger.Warn("Cache refresh after status update failed", map[string]interface{}{
					"employer_id": employerID,
					"error":       err.Error(),
				})
			}
		}

		return c.JSON(http.StatusOK, map[string]string{
			"status":     req.Status,
			"request_id": requestID,
		})
	}
}
