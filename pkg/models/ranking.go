package models

import "time"

// ApplicantWithScore is the derived view model the ranking layer builds
// per application: the flattened row plus its decoded analysis plus the
// parent job's title. It is rebuilt on every fetch and never written back.
type ApplicantWithScore struct {
	ApplicationID  string    `json:"application_id"`
	JobID          string    `json:"job_id"`
	JobTitle       string    `json:"job_title"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	ResumeURL      string    `json:"resume_url"`
	CoverLetter    string    `json:"cover_letter"`
	Skills         []string  `json:"skills"`
	Experience     string    `json:"experience"`
	Education      string    `json:"education"`
	Status         string    `json:"status"`
	Score          int       `json:"score"`
	Strengths      []string  `json:"strengths"`
	Improvements   []string  `json:"improvements"`
	Recommendation string    `json:"recommendation"`
	Feedback       string    `json:"feedback"`
	AppliedAt      time.Time `json:"applied_at"`
}

// JobApplicants groups the ranked applicants of a single job.
type JobApplicants struct {
	JobID      string               `json:"job_id"`
	JobTitle   string               `json:"job_title"`
	Applicants []ApplicantWithScore `json:"applicants"`
}

// Summary aggregates applicant statistics across all jobs of an employer.
type Summary struct {
	TotalApplicants     int                  `json:"total_applicants"`
	AnalyzedApplicants  int                  `json:"analyzed_applicants"`
	AverageScore        int                  `json:"average_score"`
	ExcellentCandidates int                  `json:"excellent_candidates"`
	TopScorers          int                  `json:"top_scorers"`
	NeedsHelp           int                  `json:"needs_help"`
	TopApplicants       []ApplicantWithScore `json:"top_applicants"`
	CommonSkills        []SkillCount         `json:"common_skills"`
}

// SkillCount is a skill string with its cross-job occurrence count.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
