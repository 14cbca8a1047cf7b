// Package errors defines the sentinel errors shared across the portal
// services. Handlers map these to HTTP statuses; anything unwrapped is a 500.
package errors

import (
	"fmt"
)

var (
	ErrNotFound           = fmt.Errorf("not found")
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrMissingFields      = fmt.Errorf("all fields are required")
	ErrMissingResume      = fmt.Errorf("resume file is required")
	ErrInvalidJobID       = fmt.Errorf("invalid job id format")
	ErrAlreadyApplied     = fmt.Errorf("you have already applied for this job")
	ErrDuplicateEmail     = fmt.Errorf("application already exists for this email address")
	ErrDuplicatePhone     = fmt.Errorf("application already exists for this phone number")
	ErrInvalidStatus      = fmt.Errorf("invalid status")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidResetToken  = fmt.Errorf("invalid or expired token")
	ErrResumeMissing      = fmt.Errorf("resume file not found")
	ErrResumeCorrupted    = fmt.Errorf("resume data corrupted")
)
