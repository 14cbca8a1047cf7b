package db

import (
	"context"
	"errors"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/gorm"
)

// CreateJob inserts a posting.
func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetJob fetches a posting by id.
func (r *Repository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	result := r.db.WithContext(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

// ListActiveJobs returns every active posting, newest first. This feeds the
// public careers page, so inactive postings never appear here.
func (r *Repository) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// ListJobs returns one admin page over all postings plus the total count.
func (r *Repository) ListJobs(ctx context.Context, page, limit int) ([]models.Job, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(page, limit)
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// UpdateJob applies a partial update: nil fields keep their stored value, so
// an explicit false on IsActive sticks while an absent one does not.
func (r *Repository) UpdateJob(ctx context.Context, update *models.JobUpdate) (*models.Job, error) {
	job, err := r.GetJob(ctx, update.ID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Type != nil {
		job.Type = *update.Type
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Requirements != nil {
		job.Requirements = *update.Requirements
	}
	if update.Salary != nil {
		job.Salary = *update.Salary
	}
	if update.Experience != nil {
		job.Experience = *update.Experience
	}
	if update.IsActive != nil {
		job.IsActive = *update.IsActive
	}

	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a posting.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// JobStats counts postings overall, by activity, and by employment type.
func (r *Repository) JobStats(ctx context.Context) (*models.JobStats, error) {
	stats := &models.JobStats{ByType: map[string]int64{}}

	if err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	stats.Inactive = stats.Total - stats.Active

	rows, err := r.db.WithContext(ctx).Model(&models.Job{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var jobType string
		var count int64
		if err := rows.Scan(&jobType, &count); err != nil {
			return nil, err
		}
		stats.ByType[jobType] = count
	}
	return stats, rows.Err()
}
