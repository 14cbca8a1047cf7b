// Package db implements the storage layer over GORM. Postgres backs
// production; tests run the same repository on in-memory SQLite.
package db

import (
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/code2cash/backend/internal/portal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Repository is the single storage handle; each entity's methods live in
// its own file.
type Repository struct {
	db *gorm.DB
}

// Config holds the postgres connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository connects to postgres, retrying with exponential backoff so a
// fresh deployment does not lose the race against its database container,
// then migrates the schema.
func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var gdb *gorm.DB
	err := backoff.Retry(func() error {
		var err error
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return New(gdb)
}

// New wraps an open gorm handle and migrates the schema. Tests use this with
// an in-memory SQLite connection.
func New(gdb *gorm.DB) (*Repository, error) {
	if err := gdb.AutoMigrate(
		&models.Admin{},
		&models.Job{},
		&models.JobApplication{},
		&models.Career{},
		&models.Meeting{},
		&models.Contact{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: gdb}, nil
}

// WithTransaction runs fn inside a transaction, giving it a repository bound
// to the transaction handle.
func (r *Repository) WithTransaction(fn func(repo *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// paginate normalizes page/limit and applies offset/limit ordering by newest
// first, the listing order of every admin table.
func paginate(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return (page - 1) * limit, limit
}
