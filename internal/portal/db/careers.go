package db

import (
	"context"
	"errors"
	"fmt"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/gorm"
)

// CreateCareer inserts a career application. Email and phone carry
// independent unique indexes; the service layer pre-checks both for
// field-specific messages, so a duplicate-key error here means a concurrent
// submission won the race.
func (r *Repository) CreateCareer(ctx context.Context, career *models.Career) error {
	result := r.db.WithContext(ctx).Create(career)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return r.careerDuplicateError(ctx, career)
		}
		return result.Error
	}
	return nil
}

// careerDuplicateError identifies which unique column the insert collided on,
// so the field-specific message stays truthful when a concurrent submission
// slipped past the pre-checks. TranslateError does not say which constraint
// fired, so we look.
func (r *Repository) careerDuplicateError(ctx context.Context, career *models.Career) error {
	if exists, err := r.CareerExistsByEmail(ctx, career.Email); err == nil && exists {
		return e.ErrDuplicateEmail
	}
	if exists, err := r.CareerExistsByPhone(ctx, career.Phone); err == nil && exists {
		return e.ErrDuplicatePhone
	}
	// The colliding row vanished before we looked; report a plain duplicate.
	return fmt.Errorf("%w: duplicate application", e.ErrInvalidInput)
}

// GetCareer fetches a career application by id.
func (r *Repository) GetCareer(ctx context.Context, id string) (*models.Career, error) {
	var career models.Career
	result := r.db.WithContext(ctx).First(&career, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &career, nil
}

// ListCareers returns one page, optionally filtered by status.
func (r *Repository) ListCareers(ctx context.Context, page, limit int, status models.ApplicationStatus) ([]models.Career, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Career{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(page, limit)
	var careers []models.Career
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&careers).Error; err != nil {
		return nil, 0, err
	}
	return careers, total, nil
}

// CareerExistsByEmail reports whether an application with this email exists.
func (r *Repository) CareerExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Career{}).
		Where("email = ?", email).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// CareerExistsByPhone reports whether an application with this phone exists.
func (r *Repository) CareerExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Career{}).
		Where("phone = ?", phone).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// UpdateCareerStatus sets the status and, when provided, the notes.
func (r *Repository) UpdateCareerStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Career, error) {
	career, err := r.GetCareer(ctx, id)
	if err != nil {
		return nil, err
	}

	career.Status = status
	if notes != nil {
		career.Notes = *notes
	}
	if err := r.db.WithContext(ctx).Save(career).Error; err != nil {
		return nil, err
	}
	return career, nil
}

// DeleteCareer removes a career application.
func (r *Repository) DeleteCareer(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Career{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// CareerStats counts career applications per status.
func (r *Repository) CareerStats(ctx context.Context) (*models.CareerStats, error) {
	stats := &models.CareerStats{}
	counts, total, err := r.statusCounts(ctx, &models.Career{})
	if err != nil {
		return nil, err
	}
	stats.Total = total
	stats.Pending = counts[string(models.StatusPending)]
	stats.Reviewed = counts[string(models.StatusReviewed)]
	stats.Shortlisted = counts[string(models.StatusShortlisted)]
	stats.Rejected = counts[string(models.StatusRejected)]
	stats.Hired = counts[string(models.StatusHired)]
	return stats, nil
}

// RecentCareers returns the n newest applications for the dashboard.
func (r *Repository) RecentCareers(ctx context.Context, n int) ([]models.Career, error) {
	var careers []models.Career
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&careers).Error
	return careers, err
}

// statusCounts groups any entity table by its status column in one query.
func (r *Repository) statusCounts(ctx context.Context, model interface{}) (map[string]int64, int64, error) {
	rows, err := r.db.WithContext(ctx).Model(model).
		Select("status, COUNT(*) AS count").
		Group("status").
		Rows()
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	var total int64
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, 0, err
		}
		counts[status] = count
		total += count
	}
	return counts, total, rows.Err()
}
