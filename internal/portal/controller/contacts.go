package controller

import (
	"context"
	"fmt"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ContactRepository is the storage surface for contact messages.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	GetContact(ctx context.Context, id string) (*models.Contact, error)
	ListContacts(ctx context.Context, page, limit int, status models.ContactStatus, priority models.ContactPriority) ([]models.Contact, int64, error)
	UpdateContact(ctx context.Context, update *models.ContactUpdate) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	ContactStats(ctx context.Context) (*models.ContactStats, error)
}

// ContactService manages contact-form messages.
type ContactService struct {
	repo   ContactRepository
	logger *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(repo ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger.Named("contact_service")}
}

// ContactMessage is one public contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit persists a visitor message as unread, medium priority.
func (s *ContactService) Submit(ctx context.Context, msg *ContactMessage) (*models.Contact, error) {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", e.ErrInvalidInput)
	}

	contact := &models.Contact{
		ID:       primitive.NewObjectID().Hex(),
		Name:     msg.Name,
		Email:    msg.Email,
		Subject:  msg.Subject,
		Message:  msg.Message,
		Status:   models.ContactUnread,
		Priority: models.PriorityMedium,
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	s.logger.Info("contact message received", zap.String("contact_id", contact.ID))
	return contact, nil
}

// List returns one admin page, optionally filtered by status and priority.
func (s *ContactService) List(ctx context.Context, page, limit int, status models.ContactStatus, priority models.ContactPriority) ([]models.Contact, int64, error) {
	return s.repo.ListContacts(ctx, page, limit, status, priority)
}

// Get fetches one message, transitioning it unread to read on first view.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact.Status == models.ContactUnread {
		read := models.ContactRead
		contact, err = s.repo.UpdateContact(ctx, &models.ContactUpdate{ID: id, Status: &read})
		if err != nil {
			return nil, err
		}
	}
	return contact, nil
}

// Update applies a partial admin update; absent fields stay untouched.
func (s *ContactService) Update(ctx context.Context, update *models.ContactUpdate) (*models.Contact, error) {
	if update.Status != nil {
		switch *update.Status {
		case models.ContactUnread, models.ContactRead, models.ContactReplied:
		default:
			return nil, e.ErrInvalidStatus
		}
	}
	if update.Priority != nil {
		switch *update.Priority {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		default:
			return nil, fmt.Errorf("%w: unknown priority %q", e.ErrInvalidInput, *update.Priority)
		}
	}
	return s.repo.UpdateContact(ctx, update)
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteContact(ctx, id)
}

// Stats counts messages per status plus the high-priority backlog.
func (s *ContactService) Stats(ctx context.Context) (*models.ContactStats, error) {
	return s.repo.ContactStats(ctx)
}
