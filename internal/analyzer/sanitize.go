package analyzer

import (
	"strings"
	"unicode/utf8"
)

// Field limits bounding prompt size and cost.
const (
	MaxJobDescriptionLen = 2000
	MaxNameLen           = 100
	MaxEmailLen          = 100
	MaxExperienceLen     = 1000
	MaxEducationLen      = 1000
	MaxSkills            = 20
)

// SanitizeText strips angle brackets and truncates to maxLen
// characters. Angle brackets are removed as basic markup and
// prompt-injection hygiene before the value is embedded in the scoring
// prompt. The limit counts runes, not bytes, so multibyte input is
// never cut mid-character.
func SanitizeText(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = strings.TrimSpace(s)
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		runes := []rune(s)
		s = string(runes[:maxLen])
	}
	return s
}

// SanitizeSkills sanitizes each skill entry and caps the list length.
// Entries that sanitize down to the empty string are dropped.
func SanitizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if len(out) == MaxSkills {
			break
		}
		cleaned := SanitizeText(skill, MaxNameLen)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
