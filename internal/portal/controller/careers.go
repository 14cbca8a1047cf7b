package controller

import (
	"context"
	"fmt"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/code2cash/backend/internal/portal/resume"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CareerRepository is the storage surface for general applications.
type CareerRepository interface {
	CreateCareer(ctx context.Context, career *models.Career) error
	GetCareer(ctx context.Context, id string) (*models.Career, error)
	ListCareers(ctx context.Context, page, limit int, status models.ApplicationStatus) ([]models.Career, int64, error)
	CareerExistsByEmail(ctx context.Context, email string) (bool, error)
	CareerExistsByPhone(ctx context.Context, phone string) (bool, error)
	UpdateCareerStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Career, error)
	DeleteCareer(ctx context.Context, id string) error
	CareerStats(ctx context.Context) (*models.CareerStats, error)
}

// CareerService manages general (non-job-specific) applications. This is a
// parallel system to JobApplication, not a unified one: uniqueness here is
// per email and per phone independently.
type CareerService struct {
	repo   CareerRepository
	store  ResumeStore
	logger *zap.Logger
}

// NewCareerService constructs the service.
func NewCareerService(repo CareerRepository, store ResumeStore, logger *zap.Logger) *CareerService {
	return &CareerService{
		repo:   repo,
		store:  store,
		logger: logger.Named("career_service"),
	}
}

// CareerSubmission is one public general application.
type CareerSubmission struct {
	Name       string
	Email      string
	Phone      string
	Position   string
	Experience string
	Resume     *ResumeUpload
}

// Submit validates and persists a general application. Email and phone
// duplicates are rejected with field-specific errors; the unique indexes
// backstop the checks.
func (s *CareerService) Submit(ctx context.Context, sub *CareerSubmission) (*models.Career, error) {
	if sub.Name == "" || sub.Email == "" || sub.Phone == "" || sub.Position == "" || sub.Experience == "" {
		return nil, e.ErrMissingFields
	}
	if sub.Resume == nil {
		return nil, e.ErrMissingResume
	}

	if exists, err := s.repo.CareerExistsByEmail(ctx, sub.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if exists {
		return nil, e.ErrDuplicateEmail
	}
	if exists, err := s.repo.CareerExistsByPhone(ctx, sub.Phone); err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	} else if exists {
		return nil, e.ErrDuplicatePhone
	}

	ref, err := s.store.Save(sub.Resume.Filename, sub.Resume.ContentType, sub.Resume.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	career := &models.Career{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               sub.Name,
		Email:              sub.Email,
		Phone:              sub.Phone,
		Position:           sub.Position,
		Experience:         sub.Experience,
		ResumeRef:          ref,
		ResumeOriginalName: sub.Resume.Filename,
		Status:             models.StatusPending,
	}
	if err := s.repo.CreateCareer(ctx, career); err != nil {
		return nil, err
	}

	s.logger.Info("career application submitted", zap.String("career_id", career.ID))
	return career, nil
}

// List returns one admin page, optionally filtered by status.
func (s *CareerService) List(ctx context.Context, page, limit int, status models.ApplicationStatus) ([]models.Career, int64, error) {
	return s.repo.ListCareers(ctx, page, limit, status)
}

// Get fetches one application.
func (s *CareerService) Get(ctx context.Context, id string) (*models.Career, error) {
	return s.repo.GetCareer(ctx, id)
}

// UpdateStatus sets the status and optionally the notes in one call,
// matching the admin console's combined form.
func (s *CareerService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Career, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, e.ErrInvalidStatus
	}
	return s.repo.UpdateCareerStatus(ctx, id, status, notes)
}

// Delete removes an application and cascades to its resume blob.
func (s *CareerService) Delete(ctx context.Context, id string) error {
	career, err := s.repo.GetCareer(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCareer(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(career.ResumeRef); err != nil {
		s.logger.Warn("failed to remove resume blob",
			zap.String("career_id", id),
			zap.Error(err),
		)
	}
	return nil
}

// ResumeFile resolves a career application's stored resume. The separately
// stored original filename wins over whatever the reference carries.
func (s *CareerService) ResumeFile(ctx context.Context, id string) (*resume.File, error) {
	career, err := s.repo.GetCareer(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := s.store.Resolve(career.ResumeRef)
	if err != nil {
		return nil, err
	}
	if career.ResumeOriginalName != "" {
		file.Name = career.ResumeOriginalName
	}
	return file, nil
}

// Stats counts applications per status.
func (s *CareerService) Stats(ctx context.Context) (*models.CareerStats, error) {
	return s.repo.CareerStats(ctx)
}
