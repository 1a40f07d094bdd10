package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Application workflow statuses, mutated only by the employer side.
const (
	StatusNew         = "new"
	StatusShortlisted = "shortlisted"
	StatusInterviewed = "interviewed"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// Application represents a candidate's submission to a single job.
// Score, Feedback and UpdatedAt are written only by the scoring service;
// a zero score with empty feedback means the application has not been
// analyzed yet, not that the candidate scored zero.
type Application struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	JobID       string         `gorm:"index;not null" json:"job_id"`
	UserID      string         `gorm:"index" json:"user_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	ResumeURL   string         `json:"resume_url"`
	CoverLetter string         `json:"cover_letter"`
	Skills      datatypes.JSON `json:"skills"`
	Experience  string         `json:"experience"`
	Education   string         `json:"education"`
	Status      string         `json:"status"`
	Score       int            `json:"score"`
	Feedback    string         `json:"feedback"`
	AppliedAt   time.Time      `json:"applied_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// SkillList decodes the stored skills column into a string slice.
// Malformed or empty skill data yields an empty slice.
func (a *Application) SkillList() []string {
	if len(a.Skills) == 0 {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal(a.Skills, &skills); err != nil {
		return []string{}
	}
	// A stored JSON null decodes without error but leaves the slice nil.
	if skills == nil {
		return []string{}
	}
	return skills
}

// ValidStatus reports whether s is one of the known workflow statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusShortlisted, StatusInterviewed, StatusRejected, StatusHired:
		return true
	}
	return false
}

// NormalizeStatus maps absent or unknown statuses to "new".
func NormalizeStatus(s string) string {
	if ValidStatus(s) {
		return s
	}
	return StatusNew
}
