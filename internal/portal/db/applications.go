package db

import (
	"context"
	"errors"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/gorm"
)

// CreateApplication inserts a job application. The composite unique index on
// (job_id, email) is the authoritative duplicate guard: a concurrent
// duplicate that slipped past the service-level existence check still maps
// to ErrAlreadyApplied here.
func (r *Repository) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	result := r.db.WithContext(ctx).Create(app)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrAlreadyApplied
		}
		return result.Error
	}
	return nil
}

// GetApplication fetches an application by id.
func (r *Repository) GetApplication(ctx context.Context, id string) (*models.JobApplication, error) {
	var app models.JobApplication
	result := r.db.WithContext(ctx).First(&app, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &app, nil
}

// ListApplications returns one page, newest first, plus the total match
// count. Empty status or jobID leaves that filter off.
func (r *Repository) ListApplications(ctx context.Context, page, limit int, status models.ApplicationStatus, jobID string) ([]models.JobApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JobApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if jobID != "" {
		query = query.Where("job_id = ?", jobID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(page, limit)
	var apps []models.JobApplication
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// ApplicationExists reports whether an application for the (job, email) pair
// already exists. Best-effort pre-check; the unique index closes the race.
func (r *Repository) ApplicationExists(ctx context.Context, jobID, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("job_id = ? AND email = ?", jobID, email).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// UpdateApplicationStatus sets only the status field.
func (r *Repository) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// UpdateApplicationNotes sets only the notes field.
func (r *Repository) UpdateApplicationNotes(ctx context.Context, id, notes string) error {
	result := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("id = ?", id).
		Update("notes", notes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// DeleteApplication removes an application row.
func (r *Repository) DeleteApplication(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.JobApplication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
