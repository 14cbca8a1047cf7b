package db

import (
	"context"
	"errors"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/gorm"
)

// CreateContact inserts a contact message.
func (r *Repository) CreateContact(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetContact fetches a contact message by id.
func (r *Repository) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	result := r.db.WithContext(ctx).First(&contact, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &contact, nil
}

// ListContacts returns one page, optionally filtered by status and priority.
func (r *Repository) ListContacts(ctx context.Context, page, limit int, status models.ContactStatus, priority models.ContactPriority) ([]models.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(page, limit)
	var contacts []models.Contact
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// UpdateContact applies a partial admin update; nil fields stay untouched.
func (r *Repository) UpdateContact(ctx context.Context, update *models.ContactUpdate) (*models.Contact, error) {
	contact, err := r.GetContact(ctx, update.ID)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		contact.Status = *update.Status
	}
	if update.Priority != nil {
		contact.Priority = *update.Priority
	}
	if update.AdminNotes != nil {
		contact.AdminNotes = *update.AdminNotes
	}

	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact message.
func (r *Repository) DeleteContact(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// ContactStats counts messages per status plus the high-priority backlog.
func (r *Repository) ContactStats(ctx context.Context) (*models.ContactStats, error) {
	counts, total, err := r.statusCounts(ctx, &models.Contact{})
	if err != nil {
		return nil, err
	}
	stats := &models.ContactStats{
		Total:   total,
		Unread:  counts[string(models.ContactUnread)],
		Read:    counts[string(models.ContactRead)],
		Replied: counts[string(models.ContactReplied)],
	}
	err = r.db.WithContext(ctx).Model(&models.Contact{}).
		Where("priority = ?", models.PriorityHigh).
		Count(&stats.HighPriority).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentContacts returns the n newest messages for the dashboard.
func (r *Repository) RecentContacts(ctx context.Context, n int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&contacts).Error
	return contacts, err
}
