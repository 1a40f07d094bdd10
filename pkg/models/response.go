package models

import "time"

// AnalyzeResponse is returned by the scoring endpoint. On persistence
// failure after a successful model call the analysis is still included so
// the caller can retry the save without paying for another model call.
type AnalyzeResponse struct {
	Success        bool          `json:"success"`
	Analysis       *Analysis     `json:"analysis,omitempty"`
	Error          string        `json:"error,omitempty"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
	RequestID      string        `json:"request_id"`
}

// BestApplicantsResponse is the ranked per-job applicant listing.
type BestApplicantsResponse struct {
	Jobs      []JobApplicants `json:"jobs"`
	Sort      string          `json:"sort"`
	Limit     int             `json:"limit,omitempty"`
	RequestID string          `json:"request_id"`
}

// SummaryResponse wraps the cross-job aggregation stats.
type SummaryResponse struct {
	Summary   *Summary `json:"summary"`
	RequestID string   `json:"request_id"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
