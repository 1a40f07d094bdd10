package ranking

import (
	"reflect"
	"testing"
)

func TestDecodeFeedback(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DecodedFeedback
	}{
		{
			name:  "structured payload",
			input: `{"strengths":["SQL"],"improvements":["Testing"],"recommendation":"Recommended","feedback":"Good fit"}`,
			expected: DecodedFeedback{
				Strengths:      []string{"SQL"},
				Improvements:   []string{"Testing"},
				Recommendation: "Recommended",
				Feedback:       "Good fit",
				Structured:     true,
			},
		},
		{
			name:  "legacy plain text",
			input: "Great communicator",
			expected: DecodedFeedback{
				Strengths:      []string{},
				Improvements:   []string{},
				Recommendation: RecommendationPending,
				Feedback:       "Great communicator",
			},
		},
		{
			name:  "quoted string is not structured",
			input: `"Great communicator"`,
			expected: DecodedFeedback{
				Strengths:      []string{},
				Improvements:   []string{},
				Recommendation: RecommendationPending,
				Feedback:       `"Great communicator"`,
			},
		},
		{
			name:  "empty feedback",
			input: "",
			expected: DecodedFeedback{
				Strengths:      []string{},
				Improvements:   []string{},
				Recommendation: RecommendationPending,
				Feedback:       "",
			},
		},
		{
			name:  "truncated json falls back to text",
			input: `{"strengths":["SQL"`,
			expected: DecodedFeedback{
				Strengths:      []string{},
				Improvements:   []string{},
				Recommendation: RecommendationPending,
				Feedback:       `{"strengths":["SQL"`,
			},
		},
		{
			name:  "partial payload keeps defaults",
			input: `{"recommendation":"Maybe"}`,
			expected: DecodedFeedback{
				Strengths:      []string{},
				Improvements:   []string{},
				Recommendation: "Maybe",
				Feedback:       "",
				Structured:     true,
			},
		},
		{
			name:  "leading whitespace before object",
			input: "  {\"feedback\":\"ok\"}",
			expected: DecodedFeedback{
				Strengths:      []string{},
				Improvements:   []string{},
				Recommendation: RecommendationPending,
				Feedback:       "ok",
				Structured:     true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeFeedback(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("DecodeFeedback(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}
