package ranking

import (
	"context"

	"golang.org/x/sync/errgroup"

	"talentboard/internal/logging"
	"talentboard/pkg/models"
)

// JobSource is the read-only storage seam the ranking layer depends on.
// Satisfied by *storage.Store; tests inject fakes.
type JobSource interface {
	ListJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error)
}

// Service derives applicant view models and aggregate statistics for an
// employer's jobs. Every call rebuilds from storage; the service holds no
// mutable state of its own, so calls are safe to repeat concurrently.
type Service struct {
	source JobSource
	cache  *Cache
	logger logging.Logger
}

// NewService creates a ranking service. cache may be nil to disable
// result caching.
func NewService(source JobSource, cache *Cache) *Service {
	return &Service{
		source: source,
		cache:  cache,
		logger: logging.GetGlobalLogger(),
	}
}

// BestApplicants returns the employer's jobs with their applicants ranked
// by the default sort key. An employer with no jobs yields an empty
// slice, not an error. Per-job application reads are independent and
// fetched concurrently.
func (s *Service) BestApplicants(ctx context.Context, employerID string) ([]models.JobApplicants, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetBestApplicants(ctx, employerID); ok {
			return cached, nil
		}
	}

	var gen int64
	if s.cache != nil {
		gen = s.cache.Generation(ctx, employerID)
	}

	jobs, err := s.source.ListJobsByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}

	groups := make([]models.JobApplicants, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i := range jobs {
		job := jobs[i]
		idx := i
		g.Go(func() error {
			apps, err := s.source.ListApplicationsByJob(gctx, job.ID)
			if err != nil {
				return err
			}

			applicants := make([]models.ApplicantWithScore, 0, len(apps))
			for j := range apps {
				applicants = append(applicants, BuildApplicant(&apps[j], &job))
			}

			groups[idx] = models.JobApplicants{
				JobID:      job.ID,
				JobTitle:   job.Title,
				Applicants: SortApplicants(applicants, DefaultSort),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetBestApplicants(ctx, employerID, gen, groups)
	}

	return groups, nil
}

// Summary computes the cross-job aggregation stats for an employer.
func (s *Service) Summary(ctx context.Context, employerID string) (*models.Summary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetSummary(ctx, employerID); ok {
			return cached, nil
		}
	}

	var gen int64
	if s.cache != nil {
		gen = s.cache.Generation(ctx, employerID)
	}

	groups, err := s.BestApplicants(ctx, employerID)
	if err != nil {
		return nil, err
	}

	var all []models.ApplicantWithScore
	for i := range groups {
		all = append(all, groups[i].Applicants...)
	}

	summary := BuildSummary(all)

	if s.cache != nil {
		s.cache.SetSummary(ctx, employerID, gen, summary)
	}

	return summary, nil
}

// Refresh drops the employer's cached results so the next read rebuilds
// from storage. This is the explicit invalidate-and-refetch trigger for
// webhooks and pollers.
func (s *Service) Refresh(ctx context.Context, employerID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateEmployer(ctx, employerID)
}

// BuildApplicant flattens an application row, its decoded feedback and
// the parent job's title into the view model used for ranking and
// display. The view model is derived only and never written back.
func BuildApplicant(app *models.Application, job *models.Job) models.ApplicantWithScore {
	decoded := DecodeFeedback(app.Feedback)

	return models.ApplicantWithScore{
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		JobTitle:       job.Title,
		Name:           app.Name,
		Email:          app.Email,
		Phone:          app.Phone,
		ResumeURL:      app.ResumeURL,
		CoverLetter:    app.CoverLetter,
		Skills:         app.SkillList(),
		Experience:     app.Experience,
		Education:      app.Education,
		Status:         models.NormalizeStatus(app.Status),
		Score:          app.Score,
		Strengths:      decoded.Strengths,
		Improvements:   decoded.Improvements,
		Recommendation: decoded.Recommendation,
		Feedback:       decoded.Feedback,
		AppliedAt:      app.AppliedAt,
	}
}
