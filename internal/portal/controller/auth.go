package controller

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/code2cash/backend/internal/portal/auth"
	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost       = 10
	resetTokenBytes  = 32
	resetTokenExpiry = time.Hour

	defaultAdminUsername = "admin"
	defaultAdminFullName = "Admin Code2Cash"
	defaultAdminEmail    = "admin@code2cash.com"
)

// AdminRepository is the storage surface of the admin identity store.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdminByResetToken(ctx context.Context, token string, now time.Time) (*models.Admin, error)
	AdminExists(ctx context.Context) (bool, error)
	UpdateAdminPassword(ctx context.Context, id, hash string) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id string) error
}

// Mailer delivers the password-reset token to the admin's address. The
// default implementation only logs; an SMTP-backed one can replace it
// without touching the service.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer is the default Mailer: it records the token in the service log
// instead of sending mail.
type LogMailer struct {
	Logger *zap.Logger
}

// SendPasswordReset logs the reset token.
func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.Logger.Info("password reset requested",
		zap.String("email", email),
		zap.String("reset_token", token),
	)
	return nil
}

// AuthService manages the single admin identity: login, token verification,
// password changes, and the reset flow.
type AuthService struct {
	repo   AdminRepository
	mailer Mailer
	secret string
	logger *zap.Logger
}

// NewAuthService constructs the service. A nil mailer falls back to the
// logging default.
func NewAuthService(repo AdminRepository, mailer Mailer, secret string, logger *zap.Logger) *AuthService {
	if mailer == nil {
		mailer = &LogMailer{Logger: logger}
	}
	return &AuthService{
		repo:   repo,
		mailer: mailer,
		secret: secret,
		logger: logger.Named("auth_service"),
	}
}

// EnsureDefaultAdmin creates the bootstrap admin when no identity exists.
// Idempotent: safe to call on every startup.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	exists, err := s.repo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}
	admin := &models.Admin{
		ID:       primitive.NewObjectID().Hex(),
		Username: defaultAdminUsername,
		FullName: defaultAdminFullName,
		Email:    defaultAdminEmail,
		Password: string(hash),
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	s.logger.Info("admin account created with default credentials",
		zap.String("username", admin.Username),
	)
	return nil
}

// Login verifies the credentials and mints a token. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return "", nil, e.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", nil, e.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.ID, admin.Username, s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, admin, nil
}

// Verify returns the admin identity behind an authenticated request.
func (s *AuthService) Verify(ctx context.Context, adminID string) (*models.Admin, error) {
	return s.repo.GetAdmin(ctx, adminID)
}

// ChangePassword swaps the password after confirming the current one.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, current, next string) error {
	admin, err := s.repo.GetAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(current)) != nil {
		return e.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdateAdminPassword(ctx, adminID, string(hash))
}

// ForgotPassword issues a one-hour reset token and hands it to the mailer.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return err
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.repo.SetResetToken(ctx, admin.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return s.mailer.SendPasswordReset(ctx, admin.Email, token)
}

// ResetPassword consumes an unexpired reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	admin, err := s.repo.GetAdminByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdateAdminPassword(ctx, admin.ID, string(hash)); err != nil {
		return err
	}
	return s.repo.ClearResetToken(ctx, admin.ID)
}
