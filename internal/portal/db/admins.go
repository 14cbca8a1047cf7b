package db

import (
	"context"
	"errors"
	"time"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/gorm"
)

// CreateAdmin inserts an admin identity.
func (r *Repository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetAdmin fetches an admin by id.
func (r *Repository) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	result := r.db.WithContext(ctx).First(&admin, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

// GetAdminByUsername fetches an admin by login name.
func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	result := r.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

// GetAdminByEmail fetches an admin by email address.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	result := r.db.WithContext(ctx).First(&admin, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

// GetAdminByResetToken fetches the admin holding an unexpired reset token.
func (r *Repository) GetAdminByResetToken(ctx context.Context, token string, now time.Time) (*models.Admin, error) {
	var admin models.Admin
	result := r.db.WithContext(ctx).
		First(&admin, "reset_token = ? AND reset_token_expiry > ?", token, now)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

// AdminExists reports whether any admin identity exists; the bootstrap step
// uses this to keep startup idempotent.
func (r *Repository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Admin{}).Limit(1).Count(&count)
	return count > 0, result.Error
}

// UpdateAdminPassword replaces the stored password hash.
func (r *Repository) UpdateAdminPassword(ctx context.Context, id, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).
		Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// SetResetToken stores a password-reset token and its expiry.
func (r *Repository) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// ClearResetToken nulls out a consumed or abandoned reset token.
func (r *Repository) ClearResetToken(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}
