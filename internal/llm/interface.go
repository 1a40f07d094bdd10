package llm

import (
	"context"

	"talentboard/internal/llm/providers"
	"talentboard/pkg/models"
)

// ErrMalformedResponse marks a model completion that could not be parsed
// or validated against the analysis schema. Callers substitute the
// neutral fallback analysis instead of surfacing this to the user.
var ErrMalformedResponse = providers.ErrMalformedResponse

// Provider defines the interface for LLM providers
type Provider interface {
	// ScoreCandidate evaluates a candidate profile against a job
	// description and returns the structured analysis. The returned
	// score is already clamped into [0, 100].
	ScoreCandidate(ctx context.Context, jobDescription string, candidate *models.CandidateData) (*models.Analysis, error)

	// IsHealthy checks if the LLM provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
