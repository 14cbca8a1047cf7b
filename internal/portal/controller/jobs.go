package controller

import (
	"context"
	"fmt"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// JobRepository is the storage surface of the posting directory.
type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListActiveJobs(ctx context.Context) ([]models.Job, error)
	ListJobs(ctx context.Context, page, limit int) ([]models.Job, int64, error)
	UpdateJob(ctx context.Context, update *models.JobUpdate) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	JobStats(ctx context.Context) (*models.JobStats, error)
}

// JobService manages the posting directory.
type JobService struct {
	repo   JobRepository
	logger *zap.Logger
}

// NewJobService constructs the service.
func NewJobService(repo JobRepository, logger *zap.Logger) *JobService {
	return &JobService{repo: repo, logger: logger.Named("job_service")}
}

// NewJobInput carries the admin-supplied posting fields.
type NewJobInput struct {
	Title        string
	Type         models.JobType
	Location     string
	Description  string
	Requirements []string
	Salary       string
	Experience   string
}

// Create adds a posting, active by default, attributed to the creating admin.
func (s *JobService) Create(ctx context.Context, in *NewJobInput, postedBy string) (*models.Job, error) {
	if in.Title == "" || in.Location == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: title, location and description are required", e.ErrInvalidInput)
	}
	switch in.Type {
	case models.FullTime, models.PartTime, models.Contract, models.Internship:
	default:
		return nil, fmt.Errorf("%w: unknown employment type %q", e.ErrInvalidInput, in.Type)
	}

	job := &models.Job{
		ID:           primitive.NewObjectID().Hex(),
		Title:        in.Title,
		Type:         in.Type,
		Location:     in.Location,
		Description:  in.Description,
		Requirements: in.Requirements,
		Salary:       in.Salary,
		Experience:   in.Experience,
		IsActive:     true,
		PostedBy:     postedBy,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	s.logger.Info("job created", zap.String("job_id", job.ID), zap.String("title", job.Title))
	return job, nil
}

// Active returns the public listing: active postings only.
func (s *JobService) Active(ctx context.Context) ([]models.Job, error) {
	return s.repo.ListActiveJobs(ctx)
}

// List returns one admin page over all postings.
func (s *JobService) List(ctx context.Context, page, limit int) ([]models.Job, int64, error) {
	return s.repo.ListJobs(ctx, page, limit)
}

// Update applies a partial update; nil fields keep their stored value.
func (s *JobService) Update(ctx context.Context, update *models.JobUpdate) (*models.Job, error) {
	if update.ID == "" {
		return nil, fmt.Errorf("%w: job id is required", e.ErrInvalidInput)
	}
	if update.Type != nil {
		switch *update.Type {
		case models.FullTime, models.PartTime, models.Contract, models.Internship:
		default:
			return nil, fmt.Errorf("%w: unknown employment type %q", e.ErrInvalidInput, *update.Type)
		}
	}
	return s.repo.UpdateJob(ctx, update)
}

// Delete removes a posting. Applications against it survive with their
// snapshotted title.
func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteJob(ctx, id)
}

// Stats summarizes the directory for the admin console.
func (s *JobService) Stats(ctx context.Context) (*models.JobStats, error) {
	return s.repo.JobStats(ctx)
}
