package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"talentboard/internal/logging"
	"talentboard/internal/ranking"
	"talentboard/pkg/models"
)

// Top-N limits accepted by the listing endpoint.
var allowedLimits = map[int]bool{3: true, 5: true, 10: true, 15: true}

// BestApplicantsHandler returns an employer's jobs with ranked
// applicants. Sorting and truncation are applied per job, after the
// default-ranked groups are built (truncating before sorting would drop
// the actual best candidates).
func BestApplicantsHandler(svc *ranking.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		employerID := c.Param("id")
		sortKey := ranking.ParseSortKey(c.QueryParam("sort"))
		limit := parseLimit(c.QueryParam("limit"))

		groups, err := svc.BestApplicants(c.Request().Context(), employerID)
		if err != nil {
			logger.Error("Failed to build applicant ranking", map[string]interface{}{
				"employer_id": employerID,
				"error":       err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "ranking_failed",
				Message:   "Could not build applicant listing",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		// Re-sort and truncate per job for the requested view; the
		// sort is pure, so the cached default ordering stays intact.
		out := make([]models.JobApplicants, len(groups))
		for i := range groups {
			applicants := ranking.SortApplicants(groups[i].Applicants, sortKey)
			out[i] = models.JobApplicants{
				JobID:      groups[i].JobID,
				JobTitle:   groups[i].JobTitle,
				Applicants: ranking.TopN(applicants, limit),
			}
		}

		return c.JSON(http.StatusOK, models.BestApplicantsResponse{
			Jobs:      out,
			Sort:      string(sortKey),
			Limit:     limit,
			RequestID: requestID,
		})
	}
}

// SummaryHandler returns the cross-job aggregation stats for an employer.
func SummaryHandler(svc *ranking.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := logging.LogWithRequestID(requestID)

		employerID := c.Param("id")

		summary, err := svc.Summary(c.Request().Context(), employerID)
		if err != nil {
			logger.Error("Failed to build summary", map[string]interface{}{
				"employer_id": employerID,
				"error":       err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "summary_failed",
				Message:   "Could not build applicant summary",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.SummaryResponse{
			Summary:   summary,
			RequestID: requestID,
		})
	}
}

// RefreshHandler drops the employer's cached rankings so the next read
// rebuilds from storage. External triggers (webhooks, pollers) call this
// instead of assuming any particular push transport.
func RefreshHandler(svc *ranking.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)

		employerID := c.Param("id")
		if err := svc.Refresh(c.Request().Context(), employerID); err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "refresh_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]string{
			"status":     "refreshed",
			"request_id": requestID,
		})
	}
}

// parseLimit maps the limit query value to a top-N count; anything
// outside the allowed set means "no limit".
func parseLimit(s string) int {
	if s == "" || s == "all" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || !allowedLimits[n] {
		return 0
	}
	return n
}
