package ranking

import (
	"encoding/json"
	"strings"
)

// RecommendationPending is the sentinel recommendation for applications
// whose feedback carries no structured analysis yet.
const RecommendationPending = "Not analyzed"

// DecodedFeedback is the result of decoding an application's feedback
// column. Structured reports whether a JSON analysis payload was found.
type DecodedFeedback struct {
	Strengths      []string
	Improvements   []string
	Recommendation string
	Feedback       string
	Structured     bool
}

// DecodeFeedback decodes a feedback value that may be either a
// JSON-encoded analysis payload or legacy plain text. It never fails:
// anything that does not parse as a JSON object is treated as opaque
// plain text with no structured fields, which is the normal state for
// applications that have not been scored yet.
func DecodeFeedback(feedback string) DecodedFeedback {
	decoded := DecodedFeedback{
		Strengths:      []string{},
		Improvements:   []string{},
		Recommendation: RecommendationPending,
		Feedback:       feedback,
	}

	trimmed := strings.TrimSpace(feedback)
	if !strings.HasPrefix(trimmed, "{") {
		return decoded
	}

	var payload struct {
		Strengths      []string `json:"strengths"`
		Improvements   []string `json:"improvements"`
		Recommendation string   `json:"recommendation"`
		Feedback       string   `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return decoded
	}

	decoded.Structured = true
	if payload.Strengths != nil {
		decoded.Strengths = payload.Strengths
	}
	if payload.Improvements != nil {
		decoded.Improvements = payload.Improvements
	}
	if payload.Recommendation != "" {
		decoded.Recommendation = payload.Recommendation
	}
	decoded.Feedback = payload.Feedback

	return decoded
}
