package ranking

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"talentboard/pkg/models"
)

type fakeSource struct {
	jobs     []models.Job
	apps     map[string][]models.Application
	jobsErr  error
	appsErr  error
	jobCalls int
}

func (f *fakeSource) ListJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	f.jobCalls++
	if f.jobsErr != nil {
		return nil, f.jobsErr
	}
	return f.jobs, nil
}

func (f *fakeSource) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	if f.appsErr != nil {
		return nil, f.appsErr
	}
	return f.apps[jobID], nil
}

func TestBestApplicantsGroupsByJob(t *testing.T) {
	source := &fakeSource{
		jobs: []models.Job{
			{ID: "job-1", Title: "Backend Engineer"},
			{ID: "job-2", Title: "Data Engineer"},
		},
		apps: map[string][]models.Application{
			"job-1": {
				{ID: "app-1", JobID: "job-1", Name: "Alice", Score: 40},
				{ID: "app-2", JobID: "job-1", Name: "Bob", Score: 90},
			},
			"job-2": {
				{ID: "app-3", JobID: "job-2", Name: "Carol", Score: 70},
			},
		},
	}
	svc := NewService(source, nil)

	groups, err := svc.BestApplicants(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("BestApplicants error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 job groups, got %d", len(groups))
	}
	if groups[0].JobID != "job-1" || groups[1].JobID != "job-2" {
		t.Errorf("job order changed: %q, %q", groups[0].JobID, groups[1].JobID)
	}
	if groups[0].JobTitle != "Backend Engineer" {
		t.Errorf("job title = %q", groups[0].JobTitle)
	}

	// Within a job the default ordering is score descending.
	first := groups[0].Applicants
	if len(first) != 2 || first[0].Name != "Bob" || first[1].Name != "Alice" {
		t.Errorf("unexpected applicant order: %v", names(first))
	}
}

func TestBestApplicantsEmptyEmployer(t *testing.T) {
	svc := NewService(&fakeSource{}, nil)

	groups, err := svc.BestApplicants(context.Background(), "emp-none")
	if err != nil {
		t.Fatalf("BestApplicants error: %v", err)
	}
	if groups == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestBestApplicantsPropagatesErrors(t *testing.T) {
	wantErr := errors.New("db closed")

	t.Run("job listing fails", func(t *testing.T) {
		svc := NewService(&fakeSource{jobsErr: wantErr}, nil)
		if _, err := svc.BestApplicants(context.Background(), "emp-1"); !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})

	t.Run("application listing fails", func(t *testing.T) {
		svc := NewService(&fakeSource{
			jobs:    []models.Job{{ID: "job-1"}},
			appsErr: wantErr,
		}, nil)
		if _, err := svc.BestApplicants(context.Background(), "emp-1"); !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})
}

func TestSummaryAggregatesAcrossJobs(t *testing.T) {
	feedback := `{"strengths":["Go"],"improvements":[],"recommendation":"Recommended","feedback":"ok"}`
	source := &fakeSource{
		jobs: []models.Job{
			{ID: "job-1", Title: "Backend Engineer"},
			{ID: "job-2", Title: "Data Engineer"},
		},
		apps: map[string][]models.Application{
			"job-1": {
				{ID: "app-1", JobID: "job-1", Score: 95, Feedback: feedback},
				{ID: "app-2", JobID: "job-1", Score: 85, Feedback: feedback},
			},
			"job-2": {
				{ID: "app-3", JobID: "job-2", Score: 70, Feedback: feedback},
				{ID: "app-4", JobID: "job-2", Score: 40, Feedback: feedback},
			},
		},
	}
	svc := NewService(source, nil)

	s, err := svc.Summary(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if s.TotalApplicants != 4 {
		t.Errorf("TotalApplicants = %d, want 4", s.TotalApplicants)
	}
	if s.AverageScore != 72 {
		t.Errorf("AverageScore = %d, want 72", s.AverageScore)
	}
}

func TestRefreshWithoutCacheIsNoop(t *testing.T) {
	svc := NewService(&fakeSource{}, nil)
	if err := svc.Refresh(context.Background(), "emp-1"); err != nil {
		t.Errorf("Refresh error: %v", err)
	}
}

func TestBuildApplicant(t *testing.T) {
	app := &models.Application{
		ID:       "app-1",
		JobID:    "job-1",
		Name:     "Alice",
		Email:    "alice@example.com",
		Skills:   datatypes.JSON(`["Go","SQL"]`),
		Score:    88,
		Feedback: `{"strengths":["Go depth"],"improvements":["Docs"],"recommendation":"Recommended","feedback":"Strong"}`,
	}
	job := &models.Job{ID: "job-1", Title: "Backend Engineer"}

	got := BuildApplicant(app, job)

	if got.JobTitle != "Backend Engineer" {
		t.Errorf("JobTitle = %q", got.JobTitle)
	}
	if got.Status != models.StatusNew {
		t.Errorf("empty status should normalize to %q, got %q", models.StatusNew, got.Status)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" {
		t.Errorf("Skills = %v", got.Skills)
	}
	if got.Recommendation != "Recommended" {
		t.Errorf("Recommendation = %q", got.Recommendation)
	}
	if len(got.Strengths) != 1 || got.Strengths[0] != "Go depth" {
		t.Errorf("Strengths = %v", got.Strengths)
	}
}

func TestBuildApplicantUnanalyzed(t *testing.T) {
	app := &models.Application{ID: "app-1", JobID: "job-1", Name: "Bob"}
	job := &models.Job{ID: "job-1", Title: "Backend Engineer"}

	got := BuildApplicant(app, job)

	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	if got.Recommendation != RecommendationPending {
		t.Errorf("Recommendation = %q, want %q", got.Recommendation, RecommendationPending)
	}
	if got.Skills == nil || len(got.Skills) != 0 {
		t.Errorf("Skills should be empty slice, got %v", got.Skills)
	}
}
