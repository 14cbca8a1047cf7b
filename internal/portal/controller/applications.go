// Package controller implements the business logic of the portal: the
// application intake pipeline, the CRUD services behind the admin console,
// and the admin identity service. Each service takes its repository as an
// interface so tests can substitute mocks.
package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/code2cash/backend/internal/portal/resume"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ApplicationRepository is the storage surface the intake pipeline needs.
type ApplicationRepository interface {
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ApplicationExists(ctx context.Context, jobID, email string) (bool, error)
	CreateApplication(ctx context.Context, app *models.JobApplication) error
	GetApplication(ctx context.Context, id string) (*models.JobApplication, error)
	ListApplications(ctx context.Context, page, limit int, status models.ApplicationStatus, jobID string) ([]models.JobApplication, int64, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	UpdateApplicationNotes(ctx context.Context, id, notes string) error
	DeleteApplication(ctx context.Context, id string) error
}

// ResumeStore is the storage backend for resume blobs.
type ResumeStore interface {
	Save(filename, contentType string, data []byte) (string, error)
	Resolve(stored string) (*resume.File, error)
	Remove(stored string) error
}

// Submission is one public application: the applicant fields plus the
// uploaded resume. Resume is nil when no file arrived.
type Submission struct {
	JobID       string
	FullName    string
	Email       string
	Phone       string
	Experience  string
	CoverLetter string
	Resume      *ResumeUpload
}

// ResumeUpload is the uploaded file as received by the transport layer,
// which has already applied the type filter and size limit.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationService implements the intake pipeline and the admin-side
// application operations.
type ApplicationService struct {
	repo   ApplicationRepository
	store  ResumeStore
	logger *zap.Logger
}

// NewApplicationService constructs the service.
func NewApplicationService(repo ApplicationRepository, store ResumeStore, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		repo:   repo,
		store:  store,
		logger: logger.Named("application_service"),
	}
}

// Submit validates and persists a public application. The check order is
// observable through the distinct errors and must hold: required fields,
// resume presence, job id shape (before any storage round-trip), job
// existence, then the duplicate check. The duplicate pre-check is
// best-effort; the unique index on (job_id, email) closes the race at
// insert time.
func (s *ApplicationService) Submit(ctx context.Context, sub *Submission) (*models.JobApplication, error) {
	if sub.JobID == "" || sub.FullName == "" || sub.Email == "" ||
		sub.Phone == "" || sub.Experience == "" || sub.CoverLetter == "" {
		return nil, e.ErrMissingFields
	}
	if sub.Resume == nil {
		return nil, e.ErrMissingResume
	}
	if _, err := primitive.ObjectIDFromHex(sub.JobID); err != nil {
		return nil, e.ErrInvalidJobID
	}

	job, err := s.repo.GetJob(ctx, sub.JobID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up job: %w", err)
	}

	exists, err := s.repo.ApplicationExists(ctx, sub.JobID, sub.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, e.ErrAlreadyApplied
	}

	ref, err := s.store.Save(sub.Resume.Filename, sub.Resume.ContentType, sub.Resume.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	app := &models.JobApplication{
		ID:          primitive.NewObjectID().Hex(),
		JobID:       sub.JobID,
		JobTitle:    job.Title,
		FullName:    sub.FullName,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Experience:  sub.Experience,
		CoverLetter: sub.CoverLetter,
		ResumeRef:   ref,
		Status:      models.StatusPending,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, e.ErrAlreadyApplied) {
			// Lost the race to a concurrent identical submission; the file
			// just written has no record pointing at it.
			if rmErr := s.store.Remove(ref); rmErr != nil {
				s.logger.Warn("failed to remove resume of raced submission", zap.Error(rmErr))
			}
			return nil, err
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
	)
	return app, nil
}

// ApplicationFilter narrows the admin listing.
type ApplicationFilter struct {
	Page   int
	Limit  int
	Status models.ApplicationStatus
	JobID  string
}

// List returns one admin page of applications plus the total match count.
func (s *ApplicationService) List(ctx context.Context, filter ApplicationFilter) ([]models.JobApplication, int64, error) {
	if filter.Status != "" && !models.ValidApplicationStatus(filter.Status) {
		return nil, 0, e.ErrInvalidStatus
	}
	return s.repo.ListApplications(ctx, filter.Page, filter.Limit, filter.Status, filter.JobID)
}

// Get fetches one application.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.JobApplication, error) {
	return s.repo.GetApplication(ctx, id)
}

// UpdateStatus sets the status after validating it against the closed enum.
// Any status may move to any other; the set is labels, not a workflow.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.JobApplication, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, e.ErrInvalidStatus
	}
	if err := s.repo.UpdateApplicationStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetApplication(ctx, id)
}

// UpdateNotes replaces the admin notes, leaving status untouched.
func (s *ApplicationService) UpdateNotes(ctx context.Context, id, notes string) (*models.JobApplication, error) {
	if err := s.repo.UpdateApplicationNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	return s.repo.GetApplication(ctx, id)
}

// Delete removes an application and cascades to its resume blob so disk
// files are not orphaned. A failed blob removal is logged, not surfaced: the
// record deletion already happened.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteApplication(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(app.ResumeRef); err != nil {
		s.logger.Warn("failed to remove resume blob",
			zap.String("application_id", id),
			zap.Error(err),
		)
	}
	return nil
}

// ResumeFile resolves an application's stored resume to its bytes, original
// filename, and MIME type. Serves both the download and the inline view.
func (s *ApplicationService) ResumeFile(ctx context.Context, id string) (*resume.File, error) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := s.store.Resolve(app.ResumeRef)
	if err != nil {
		if errors.Is(err, e.ErrResumeCorrupted) {
			s.logger.Warn("resume reference corrupted",
				zap.String("application_id", id),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return file, nil
}
