package controller

import (
	"context"
	"fmt"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MeetingRepository is the storage surface for meeting requests.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	ListMeetings(ctx context.Context, page, limit int, status models.MeetingStatus) ([]models.Meeting, int64, error)
	UpdateMeeting(ctx context.Context, update *models.MeetingUpdate) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
	MeetingStats(ctx context.Context) (*models.MeetingStats, error)
}

// MeetingService manages visitor meeting requests.
type MeetingService struct {
	repo   MeetingRepository
	logger *zap.Logger
}

// NewMeetingService constructs the service.
func NewMeetingService(repo MeetingRepository, logger *zap.Logger) *MeetingService {
	return &MeetingService{repo: repo, logger: logger.Named("meeting_service")}
}

// MeetingRequest is one public booking submission. Preferred date and time
// stay free text; no parsing is attempted.
type MeetingRequest struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	Message       string
	PreferredDate string
	PreferredTime string
}

// Request persists a visitor's meeting request with status pending.
func (s *MeetingService) Request(ctx context.Context, req *MeetingRequest) (*models.Meeting, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", e.ErrInvalidInput)
	}

	meeting := &models.Meeting{
		ID:            primitive.NewObjectID().Hex(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Message:       req.Message,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Status:        models.MeetingPending,
	}
	if err := s.repo.CreateMeeting(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting request: %w", err)
	}
	s.logger.Info("meeting requested", zap.String("meeting_id", meeting.ID))
	return meeting, nil
}

// List returns one admin page, optionally filtered by status.
func (s *MeetingService) List(ctx context.Context, page, limit int, status models.MeetingStatus) ([]models.Meeting, int64, error) {
	return s.repo.ListMeetings(ctx, page, limit, status)
}

// Get fetches one request.
func (s *MeetingService) Get(ctx context.Context, id string) (*models.Meeting, error) {
	return s.repo.GetMeeting(ctx, id)
}

// Update applies a partial admin update: status (validated), notes, and the
// admin-assigned schedule. Absent fields stay untouched.
func (s *MeetingService) Update(ctx context.Context, update *models.MeetingUpdate) (*models.Meeting, error) {
	if update.Status != nil && !models.ValidMeetingStatus(*update.Status) {
		return nil, e.ErrInvalidStatus
	}
	return s.repo.UpdateMeeting(ctx, update)
}

// Delete removes a request.
func (s *MeetingService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteMeeting(ctx, id)
}

// Stats counts requests per status.
func (s *MeetingService) Stats(ctx context.Context) (*models.MeetingStats, error) {
	return s.repo.MeetingStats(ctx)
}
