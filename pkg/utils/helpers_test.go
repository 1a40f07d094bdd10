package utils

import "testing"

func TestClampScore(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"in range", 73, 73},
		{"lower bound", 0, 0},
		{"upper bound", 100, 100},
		{"above range", 150, 100},
		{"below range", -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampScore(tt.input); got != tt.expected {
				t.Errorf("ClampScore(%d) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestContains(t *testing.T) {
	slice := []string{"Go", "SQL"}

	if !Contains(slice, "Go") {
		t.Error("Contains should find Go")
	}
	if Contains(slice, "Rust") {
		t.Error("Contains should not find Rust")
	}
	if Contains(nil, "Go") {
		t.Error("Contains on nil slice should be false")
	}
}

func TestGetStringOrDefault(t *testing.T) {
	if got := GetStringOrDefault("", "fallback"); got != "fallback" {
		t.Errorf("empty value should use default, got %q", got)
	}
	if got := GetStringOrDefault("value", "fallback"); got != "value" {
		t.Errorf("non-empty value should win, got %q", got)
	}
}
