package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"talentboard/pkg/models"
)

// ErrNotFound is returned when a keyed lookup or update matches no row.
var ErrNotFound = errors.New("record not found")

// Store wraps SQLite access for jobs and applications. The scoring
// service is the only writer of the analysis columns; the ranking layer
// only reads.
type Store struct {
	db *gorm.DB
}

// NewStore opens the database at dbPath and migrates the schema.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&models.Job{}, &models.Application{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// CreateJob inserts a new job posting.
func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetJob fetches a job by ID.
func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// ListJobsByEmployer returns all jobs owned by an employer, oldest first.
func (s *Store) ListJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at ASC").
		Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// CreateApplication inserts a new application with workflow defaults.
func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	app.Status = models.NormalizeStatus(app.Status)
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// GetApplication fetches an application by ID.
func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// ListApplicationsByJob returns a job's applications, newest first.
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// UpdateAnalysis writes the scoring result onto an application. The keyed
// update is atomic at the row level; under concurrent re-scores the last
// committed write wins, which is acceptable because scoring is a pure
// re-derivable function of its inputs.
func (s *Store) UpdateAnalysis(ctx context.Context, applicationID string, score int, feedback string) error {
	tx := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", applicationID).
		Updates(map[string]any{
			"score":      score,
			"feedback":   feedback,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return fmt.Errorf("update analysis: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("update analysis for %s: %w", applicationID, ErrNotFound)
	}
	return nil
}

// UpdateStatus moves an application through the employer workflow.
func (s *Store) UpdateStatus(ctx context.Context, applicationID, status string) error {
	tx := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", applicationID).
		Updates(map[string]any{
			"status":     models.NormalizeStatus(status),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return fmt.Errorf("update status: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("update status for %s: %w", applicationID, ErrNotFound)
	}
	return nil
}

// EmployerForApplication resolves the owning employer of an application
// through its parent job. Used to scope cache invalidation.
func (s *Store) EmployerForApplication(ctx context.Context, applicationID string) (string, error) {
	app, err := s.GetApplication(ctx, applicationID)
	if err != nil {
		return "", err
	}
	job, err := s.GetJob(ctx, app.JobID)
	if err != nil {
		return "", err
	}
	return job.EmployerID, nil
}
