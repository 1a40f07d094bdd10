package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"talentboard/internal/config"
	"talentboard/internal/llm"
	"talentboard/internal/logging"
	"talentboard/pkg/models"
	"talentboard/pkg/utils"
)

// Scorer produces a structured analysis for a candidate/job pair.
// Satisfied by *llm.Manager; tests inject fakes.
type Scorer interface {
	ScoreCandidate(ctx context.Context, jobDescription string, candidate *models.CandidateData) (*models.Analysis, error)
}

// Store is the persistence seam the analyzer writes through.
type Store interface {
	UpdateAnalysis(ctx context.Context, applicationID string, score int, feedback string) error
	EmployerForApplication(ctx context.Context, applicationID string) (string, error)
}

// Invalidator drops cached ranking data for an employer after a scoring
// write. May be nil when no cache is configured.
type Invalidator interface {
	InvalidateEmployer(ctx context.Context, employerID string) error
}

// SaveError reports that the model call succeeded but persisting the
// result failed. It carries the completed analysis so the caller can
// retry the save without paying for another model call.
type SaveError struct {
	Analysis *models.Analysis
	Err      error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("analysis completed but could not be saved: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Analyzer is the scoring service: it validates and sanitizes the
// request, invokes the model, degrades malformed completions to a
// neutral fallback, and persists the result onto the application.
type Analyzer struct {
	config *config.Config
	scorer Scorer
	store  Store
	cache  Invalidator
	logger logging.Logger
}

// New creates an Analyzer. cache may be nil.
func New(cfg *config.Config, scorer Scorer, store Store, cache Invalidator) *Analyzer {
	return &Analyzer{
		config: cfg,
		scorer: scorer,
		store:  store,
		cache:  cache,
		logger: logging.GetGlobalLogger(),
	}
}

// Analyze scores a candidate against a job description and persists the
// result onto the application identified by the request.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Analysis, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if a.config.LLM.APIKey == "" {
		return nil, utils.NewConfigurationError("LLM API key not configured")
	}

	candidate := sanitizeCandidate(req.CandidateData)
	jobDescription := SanitizeText(req.JobDescription, MaxJobDescriptionLen)

	callCtx, cancel := context.WithTimeout(ctx, a.config.LLM.Timeout)
	defer cancel()

	analysis, err := a.scorer.ScoreCandidate(callCtx, jobDescription, candidate)
	switch {
	case err == nil:
	case errors.Is(err, llm.ErrMalformedResponse):
		// Malformed model output is an expected path: degrade to the
		// neutral fallback so the pipeline still persists a usable result.
		a.logger.Warn("Model response failed validation, using fallback analysis", map[string]interface{}{
			"application_id": req.ApplicationID,
			"error":          err.Error(),
		})
		analysis = FallbackAnalysis()
	default:
		return nil, utils.NewLLMError(err.Error())
	}

	analysis.ApplicationID = req.ApplicationID
	analysis.Score = utils.ClampScore(analysis.Score)

	if err := a.persist(ctx, analysis); err != nil {
		return nil, &SaveError{Analysis: analysis, Err: err}
	}

	a.invalidate(ctx, req.ApplicationID)

	return analysis, nil
}

// SaveAnalysis retries persistence of a completed analysis without a new
// model call.
func (a *Analyzer) SaveAnalysis(ctx context.Context, analysis *models.Analysis) error {
	if analysis == nil || analysis.ApplicationID == "" {
		return utils.NewValidationError("analysis with applicationId is required")
	}

	analysis.Score = utils.ClampScore(analysis.Score)

	if err := a.persist(ctx, analysis); err != nil {
		return err
	}

	a.invalidate(ctx, analysis.ApplicationID)
	return nil
}

// persist writes score plus the JSON-encoded structured feedback payload
// onto the application row. The structured encoding is the write
// contract; plain-text feedback only exists on legacy rows.
func (a *Analyzer) persist(ctx context.Context, analysis *models.Analysis) error {
	payload := models.FeedbackPayload{
		Strengths:      analysis.Strengths,
		Improvements:   analysis.Improvements,
		Recommendation: analysis.Recommendation,
		Feedback:       analysis.Feedback,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode feedback payload: %w", err)
	}

	return a.store.UpdateAnalysis(ctx, analysis.ApplicationID, analysis.Score, string(encoded))
}

// invalidate drops the owning employer's cached rankings, best effort.
func (a *Analyzer) invalidate(ctx context.Context, applicationID string) {
	if a.cache == nil {
		return
	}

	employerID, err := a.store.EmployerForApplication(ctx, applicationID)
	if err != nil {
		a.logger.Warn("Could not resolve employer for cache invalidation", map[string]interface{}{
			"application_id": applicationID,
			"error":          err.Error(),
		})
		return
	}

	if err := a.cache.InvalidateEmployer(ctx, employerID); err != nil {
		a.logger.Warn("Cache invalidation failed", map[string]interface{}{
			"employer_id": employerID,
			"error":       err.Error(),
		})
	}
}

// FallbackAnalysis is the fixed neutral result substituted when the
// model response cannot be validated.
func FallbackAnalysis() *models.Analysis {
	return &models.Analysis{
		Score:          50,
		Strengths:      []string{"Application received and profile on record"},
		Improvements:   []string{"Automated analysis could not fully assess this profile"},
		Recommendation: "Maybe",
		Feedback:       "The automated analysis was incomplete, so a neutral score was assigned. Review this application manually.",
	}
}

// validateRequest rejects incomplete requests before any model call.
func validateRequest(req *models.AnalyzeRequest) error {
	if req == nil {
		return utils.NewValidationError("request body is required")
	}
	if req.ApplicationID == "" {
		return utils.NewValidationError("applicationId is required")
	}
	if req.JobDescription == "" {
		return utils.NewValidationError("jobDescription is required")
	}
	if req.CandidateData == nil {
		return utils.NewValidationError("candidateData is required")
	}
	if req.CandidateData.Name == "" {
		return utils.NewValidationError("candidateData.name is required")
	}
	if req.CandidateData.Email == "" {
		return utils.NewValidationError("candidateData.email is required")
	}
	return nil
}

func sanitizeCandidate(c *models.CandidateData) *models.CandidateData {
	return &models.CandidateData{
		Name:       SanitizeText(c.Name, MaxNameLen),
		Email:      SanitizeText(c.Email, MaxEmailLen),
		Experience: SanitizeText(c.Experience, MaxExperienceLen),
		Education:  SanitizeText(c.Education, MaxEducationLen),
		Skills:     SanitizeSkills(c.Skills),
	}
}
