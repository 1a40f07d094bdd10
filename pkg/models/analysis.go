package models

// Analysis is the structured output of the scoring service for one
// application. Strengths, improvements and the recommendation are not
// stored as separate columns; they travel inside the persisted feedback
// payload and are decoded back out by the ranking layer.
type Analysis struct {
	ApplicationID  string   `json:"applicationId"`
	Score          int      `json:"score"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	Recommendation string   `json:"recommendation"`
	Feedback       string   `json:"feedback"`
}

// FeedbackPayload is the JSON shape written into applications.feedback.
// The ranking layer must always be able to re-parse it; plain-text
// feedback only exists on legacy rows.
type FeedbackPayload struct {
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	Recommendation string   `json:"recommendation"`
	Feedback       string   `json:"feedback,omitempty"`
}
