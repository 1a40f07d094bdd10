package models

import (
	"testing"

	"gorm.io/datatypes"
)

func TestSkillList(t *testing.T) {
	tests := []struct {
		name     string
		skills   datatypes.JSON
		expected []string
	}{
		{"valid list", datatypes.JSON(`["Go","SQL"]`), []string{"Go", "SQL"}},
		{"empty column", nil, []string{}},
		{"stored null", datatypes.JSON(`null`), []string{}},
		{"empty array", datatypes.JSON(`[]`), []string{}},
		{"malformed json", datatypes.JSON(`not json`), []string{}},
		{"wrong shape", datatypes.JSON(`{"skill":"Go"}`), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &Application{Skills: tt.skills}
			got := app.SkillList()
			if got == nil {
				t.Fatal("SkillList returned nil")
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("SkillList = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("SkillList[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{StatusNew, StatusNew},
		{StatusShortlisted, StatusShortlisted},
		{StatusHired, StatusHired},
		{"", StatusNew},
		{"archived", StatusNew},
		{"NEW", StatusNew},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.input); got != tt.expected {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
