package db

import (
	"context"
	"errors"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/gorm"
)

// CreateMeeting inserts a meeting request.
func (r *Repository) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// GetMeeting fetches a meeting request by id.
func (r *Repository) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	var meeting models.Meeting
	result := r.db.WithContext(ctx).First(&meeting, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &meeting, nil
}

// ListMeetings returns one page, optionally filtered by status.
func (r *Repository) ListMeetings(ctx context.Context, page, limit int, status models.MeetingStatus) ([]models.Meeting, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Meeting{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(page, limit)
	var meetings []models.Meeting
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&meetings).Error; err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

// UpdateMeeting applies a partial admin update; nil fields stay untouched.
func (r *Repository) UpdateMeeting(ctx context.Context, update *models.MeetingUpdate) (*models.Meeting, error) {
	meeting, err := r.GetMeeting(ctx, update.ID)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		meeting.Status = *update.Status
	}
	if update.AdminNotes != nil {
		meeting.AdminNotes = *update.AdminNotes
	}
	if update.ScheduledDate != nil {
		meeting.ScheduledDate = *update.ScheduledDate
	}
	if update.ScheduledTime != nil {
		meeting.ScheduledTime = *update.ScheduledTime
	}

	if err := r.db.WithContext(ctx).Save(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

// DeleteMeeting removes a meeting request.
func (r *Repository) DeleteMeeting(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Meeting{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// MeetingStats counts meeting requests per status.
func (r *Repository) MeetingStats(ctx context.Context) (*models.MeetingStats, error) {
	counts, total, err := r.statusCounts(ctx, &models.Meeting{})
	if err != nil {
		return nil, err
	}
	return &models.MeetingStats{
		Total:     total,
		Pending:   counts[string(models.MeetingPending)],
		Approved:  counts[string(models.MeetingApproved)],
		Rejected:  counts[string(models.MeetingRejected)],
		Completed: counts[string(models.MeetingCompleted)],
	}, nil
}

// RecentMeetings returns the n newest requests for the dashboard.
func (r *Repository) RecentMeetings(ctx context.Context, n int) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&meetings).Error
	return meetings, err
}
