package providers

import (
	"errors"
	"testing"
)

const validCompletion = `{
  "score": 85,
  "strengths": ["Go expertise", "Distributed systems"],
  "improvements": ["Limited frontend exposure"],
  "recommendation": "Recommended",
  "feedback": "Strong backend candidate."
}`

func TestParseAnalysisResponse(t *testing.T) {
	analysis, err := parseAnalysisResponse(validCompletion)
	if err != nil {
		t.Fatalf("parseAnalysisResponse: %v", err)
	}
	if analysis.Score != 85 {
		t.Errorf("Score = %d, want 85", analysis.Score)
	}
	if len(analysis.Strengths) != 2 || analysis.Strengths[0] != "Go expertise" {
		t.Errorf("Strengths = %v", analysis.Strengths)
	}
	if analysis.Recommendation != "Recommended" {
		t.Errorf("Recommendation = %q", analysis.Recommendation)
	}
}

func TestParseAnalysisResponseStripsCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"json fence", "```json\n" + validCompletion + "\n```"},
		{"bare fence", "```\n" + validCompletion + "\n```"},
		{"surrounding whitespace", "\n  " + validCompletion + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := parseAnalysisResponse(tt.input)
			if err != nil {
				t.Fatalf("parseAnalysisResponse: %v", err)
			}
			if analysis.Score != 85 {
				t.Errorf("Score = %d, want 85", analysis.Score)
			}
		})
	}
}

func TestParseAnalysisResponseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prose instead of json", "The candidate looks like a strong match."},
		{"truncated json", `{"score": 85, "strengths": ["Go"`},
		{"missing score", `{"strengths":[],"improvements":[],"recommendation":"Maybe","feedback":"f"}`},
		{"missing strengths", `{"score":50,"improvements":[],"recommendation":"Maybe","feedback":"f"}`},
		{"missing improvements", `{"score":50,"strengths":[],"recommendation":"Maybe","feedback":"f"}`},
		{"missing recommendation", `{"score":50,"strengths":[],"improvements":[],"feedback":"f"}`},
		{"missing feedback", `{"score":50,"strengths":[],"improvements":[],"recommendation":"Maybe"}`},
		{"wrong score type", `{"score":"high","strengths":[],"improvements":[],"recommendation":"Maybe","feedback":"f"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnalysisResponse(tt.input)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("parseAnalysisResponse(%q) = %v, want ErrMalformedResponse", tt.input, err)
			}
		})
	}
}

func TestParseAnalysisResponseClampsScore(t *testing.T) {
	tests := []struct {
		name     string
		score    string
		expected int
	}{
		{"above range", "150", 100},
		{"below range", "-10", 0},
		{"fractional", "87.6", 87},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"score":` + tt.score + `,"strengths":[],"improvements":[],"recommendation":"Maybe","feedback":"f"}`
			analysis, err := parseAnalysisResponse(input)
			if err != nil {
				t.Fatalf("parseAnalysisResponse: %v", err)
			}
			if analysis.Score != tt.expected {
				t.Errorf("Score = %d, want %d", analysis.Score, tt.expected)
			}
		})
	}
}
