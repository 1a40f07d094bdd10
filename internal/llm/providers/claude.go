package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"talentboard/internal/config"
	"talentboard/internal/logging"
	"talentboard/pkg/models"
	"talentboard/pkg/utils"
)

// ErrMalformedResponse marks a completion that failed JSON parsing or
// schema validation. Re-exported as llm.ErrMalformedResponse.
var ErrMalformedResponse = errors.New("malformed model response")

// ClaudeProvider implements candidate scoring using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ScoreCandidate evaluates a candidate profile against a job description
// using Claude and returns the structured analysis.
func (cp *ClaudeProvider) ScoreCandidate(ctx context.Context, jobDescription string, candidate *models.CandidateData) (*models.Analysis, error) {
	startTime := time.Now()

	cp.logger.Info("Starting candidate scoring with Claude", map[string]interface{}{
		"candidate":   candidate.Name,
		"desc_length": len(jobDescription),
		"provider":    "claude",
	})

	prompt := cp.buildScoringPrompt(jobDescription, candidate)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: "You are an experienced HR evaluator. You respond with a single JSON object and nothing else."},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	analysis, err := parseAnalysisResponse(responseText(response))
	if err != nil {
		return nil, err
	}

	cp.logger.Info("Candidate scoring completed", map[string]interface{}{
		"candidate":       candidate.Name,
		"score":           analysis.Score,
		"processing_time": time.Since(startTime),
		"provider":        "claude",
	})

	return analysis, nil
}

// buildScoringPrompt creates the HR evaluation prompt for Claude
func (cp *ClaudeProvider) buildScoringPrompt(jobDescription string, candidate *models.CandidateData) string {
	var sb strings.Builder

	sb.WriteString("Evaluate how well the candidate below matches the job description and return ONLY a JSON object with exactly these fields:\n\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "score": number between 0 and 100 - overall compatibility,` + "\n")
	sb.WriteString(`  "strengths": ["array of strings - the candidate's strongest points for this role"],` + "\n")
	sb.WriteString(`  "improvements": ["array of strings - areas where the candidate falls short"],` + "\n")
	sb.WriteString(`  "recommendation": "string - one of: Highly Recommended, Recommended, Maybe, Not Recommended",` + "\n")
	sb.WriteString(`  "feedback": "string - 2-3 sentence summary of the evaluation"` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("IMPORTANT RULES:\n")
	sb.WriteString("1. Return ONLY valid JSON, no additional text or explanation\n")
	sb.WriteString("2. Keep strengths and improvements short, 3-5 items each\n")
	sb.WriteString("3. Base the score on the overlap between the candidate's profile and the job requirements\n\n")

	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\nCANDIDATE:\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", candidate.Name))
	sb.WriteString(fmt.Sprintf("Email: %s\n", candidate.Email))
	if candidate.Experience != "" {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", candidate.Experience))
	}
	if candidate.Education != "" {
		sb.WriteString(fmt.Sprintf("Education: %s\n", candidate.Education))
	}
	if len(candidate.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(candidate.Skills, ", ")))
	}

	return sb.String()
}

// responseText extracts the text completion from a Claude message
func responseText(response *anthropic.Message) string {
	if response == nil || len(response.Content) == 0 {
		return ""
	}
	for _, content := range response.Content {
		textContent := content.AsText()
		if textContent.Text != "" {
			return textContent.Text
		}
	}
	return ""
}

// analysisPayload mirrors the expected model output. Pointer fields
// distinguish missing keys from zero values during validation.
type analysisPayload struct {
	Score          *float64  `json:"score"`
	Strengths      *[]string `json:"strengths"`
	Improvements   *[]string `json:"improvements"`
	Recommendation *string   `json:"recommendation"`
	Feedback       *string   `json:"feedback"`
}

// parseAnalysisResponse parses and validates the model's text output.
// Any parse or shape failure is reported as ErrMalformedResponse.
func parseAnalysisResponse(text string) (*models.Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty completion: %w", ErrMalformedResponse)
	}

	// Strip markdown code fences if present
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parse completion JSON: %v: %w", err, ErrMalformedResponse)
	}

	if payload.Score == nil || payload.Strengths == nil || payload.Improvements == nil ||
		payload.Recommendation == nil || payload.Feedback == nil {
		return nil, fmt.Errorf("completion missing required fields: %w", ErrMalformedResponse)
	}

	return &models.Analysis{
		Score:          utils.ClampScore(int(*payload.Score)),
		Strengths:      *payload.Strengths,
		Improvements:   *payload.Improvements,
		Recommendation: *payload.Recommendation,
		Feedback:       *payload.Feedback,
	}, nil
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
