package models

// CandidateData carries the profile fields fed into the scoring prompt.
type CandidateData struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// AnalyzeRequest is the payload for the candidate scoring endpoint.
type AnalyzeRequest struct {
	ApplicationID  string         `json:"applicationId" validate:"required"`
	JobDescription string         `json:"jobDescription" validate:"required"`
	CandidateData  *CandidateData `json:"candidateData" validate:"required"`
}

// SaveAnalysisRequest retries persistence of an already-completed analysis
// without triggering a new model call.
type SaveAnalysisRequest struct {
	Score          int      `json:"score" validate:"min=0,max=100"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	Recommendation string   `json:"recommendation" validate:"required"`
	Feedback       string   `json:"feedback"`
}

// CreateJobRequest is the payload for posting a new job.
type CreateJobRequest struct {
	EmployerID  string `json:"employer_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description" validate:"required"`
}

// CreateApplicationRequest is the payload for applying to a job.
type CreateApplicationRequest struct {
	UserID      string   `json:"user_id,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty"`
	ResumeURL   string   `json:"resume_url,omitempty"`
	CoverLetter string   `json:"cover_letter,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Education   string   `json:"education,omitempty"`
}

// UpdateStatusRequest moves an application through the employer workflow.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new shortlisted interviewed rejected hired"`
}
