// Package models defines the persisted entities of the portal backend.
// Entities use 24-character hex object ids as string primary keys; the ids
// are generated in the service layer, not by the database.
package models

import (
	"time"

	"gorm.io/gorm"
)

// JobType is the employment type of a posting.
type JobType string

const (
	FullTime   JobType = "Full-time"
	PartTime   JobType = "Part-time"
	Contract   JobType = "Contract"
	Internship JobType = "Internship"
)

// ApplicationStatus labels a job or career application. The set is closed but
// unordered: any status may transition to any other.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// ValidApplicationStatus reports whether s belongs to the closed status set.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Job is a posting on the public careers page.
type Job struct {
	ID           string   `gorm:"primaryKey;size:24" json:"id"`
	Title        string   `gorm:"size:255;not null" json:"title"`
	Type         JobType  `gorm:"size:32;not null" json:"type"`
	Location     string   `gorm:"size:255;not null" json:"location"`
	Description  string   `gorm:"type:text;not null" json:"description"`
	Requirements []string `gorm:"serializer:json" json:"requirements"`
	Salary       string   `gorm:"size:255" json:"salary"`
	Experience   string   `gorm:"size:255" json:"experience"`
	// IsActive has no column default on purpose: gorm treats a zero-value
	// bool as unset on insert and would overwrite an explicit false with the
	// default. The service layer sets it on create.
	IsActive bool `json:"isActive"`
	// PostedBy references the admin who created the posting.
	PostedBy  string    `gorm:"size:24" json:"postedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobUpdate carries a partial update for a Job. Nil pointers leave the stored
// field untouched, so a falsy value in the store survives an absent field.
type JobUpdate struct {
	ID           string
	Title        *string
	Type         *JobType
	Location     *string
	Description  *string
	Requirements *[]string
	Salary       *string
	Experience   *string
	IsActive     *bool
}

// JobApplication ties an applicant to a posting. JobTitle is a snapshot taken
// at submission time so historical display survives job deletion or renames.
// The (job_id, email) pair is unique: one application per job per address.
type JobApplication struct {
	ID          string            `gorm:"primaryKey;size:24" json:"id"`
	JobID       string            `gorm:"size:24;index;uniqueIndex:idx_job_email;not null" json:"jobId"`
	JobTitle    string            `gorm:"size:255" json:"jobTitle"`
	FullName    string            `gorm:"size:255;not null" json:"fullName"`
	Email       string            `gorm:"size:255;uniqueIndex:idx_job_email;not null" json:"email"`
	Phone       string            `gorm:"size:64;not null" json:"phone"`
	Experience  string            `gorm:"type:text" json:"experience"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter"`
	// ResumeRef is the opaque stored reference (tagged path or inline blob);
	// it is never serialized to API consumers.
	ResumeRef string            `gorm:"type:text" json:"-"`
	Status    ApplicationStatus `gorm:"size:32;default:pending" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Career is a general, non-job-specific application. Unlike JobApplication,
// uniqueness is per email and per phone independently.
type Career struct {
	ID                 string            `gorm:"primaryKey;size:24" json:"id"`
	Name               string            `gorm:"size:255;not null" json:"name"`
	Email              string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone              string            `gorm:"size:64;uniqueIndex;not null" json:"phone"`
	Position           string            `gorm:"size:255;not null" json:"position"`
	Experience         string            `gorm:"type:text" json:"experience"`
	ResumeRef          string            `gorm:"type:text" json:"-"`
	ResumeOriginalName string            `gorm:"size:255" json:"resumeOriginalName"`
	Status             ApplicationStatus `gorm:"size:32;default:pending" json:"status"`
	Notes              string            `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// MeetingStatus labels a meeting request.
type MeetingStatus string

const (
	MeetingPending   MeetingStatus = "pending"
	MeetingApproved  MeetingStatus = "approved"
	MeetingRejected  MeetingStatus = "rejected"
	MeetingCompleted MeetingStatus = "completed"
)

// ValidMeetingStatus reports whether s belongs to the meeting status set.
func ValidMeetingStatus(s MeetingStatus) bool {
	switch s {
	case MeetingPending, MeetingApproved, MeetingRejected, MeetingCompleted:
		return true
	}
	return false
}

// Meeting is a visitor's meeting request. Preferred date/time are free text
// exactly as the visitor typed them; scheduled date/time are admin-assigned.
type Meeting struct {
	ID            string        `gorm:"primaryKey;size:24" json:"id"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Email         string        `gorm:"size:255;not null" json:"email"`
	Phone         string        `gorm:"size:64" json:"phone"`
	Company       string        `gorm:"size:255" json:"company"`
	Message       string        `gorm:"type:text" json:"message"`
	PreferredDate string        `gorm:"size:64" json:"preferredDate"`
	PreferredTime string        `gorm:"size:64" json:"preferredTime"`
	Status        MeetingStatus `gorm:"size:32;default:pending" json:"status"`
	ScheduledDate string        `gorm:"size:64" json:"scheduledDate"`
	ScheduledTime string        `gorm:"size:64" json:"scheduledTime"`
	AdminNotes    string        `gorm:"type:text" json:"adminNotes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// MeetingUpdate is a partial admin update for a Meeting.
type MeetingUpdate struct {
	ID            string
	Status        *MeetingStatus
	AdminNotes    *string
	ScheduledDate *string
	ScheduledTime *string
}

// ContactStatus labels a contact message.
type ContactStatus string

const (
	ContactUnread  ContactStatus = "unread"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

// ContactPriority is admin-assigned triage priority.
type ContactPriority string

const (
	PriorityLow    ContactPriority = "low"
	PriorityMedium ContactPriority = "medium"
	PriorityHigh   ContactPriority = "high"
)

// Contact is a message from the public contact form. Status auto-transitions
// unread to read on first admin view.
type Contact struct {
	ID         string          `gorm:"primaryKey;size:24" json:"id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Email      string          `gorm:"size:255;not null" json:"email"`
	Subject    string          `gorm:"size:255" json:"subject"`
	Message    string          `gorm:"type:text;not null" json:"message"`
	Status     ContactStatus   `gorm:"size:32;default:unread" json:"status"`
	Priority   ContactPriority `gorm:"size:32;default:medium" json:"priority"`
	AdminNotes string          `gorm:"type:text" json:"adminNotes"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ContactUpdate is a partial admin update for a Contact.
type ContactUpdate struct {
	ID         string
	Status     *ContactStatus
	Priority   *ContactPriority
	AdminNotes *string
}

// Admin is the single administrative identity. Exactly one row is expected in
// steady state; it is bootstrapped at startup when the table is empty.
type Admin struct {
	ID               string         `gorm:"primaryKey;size:24" json:"id"`
	Username         string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	FullName         string         `gorm:"size:255;not null" json:"fullName"`
	Email            string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password         string         `gorm:"size:255;not null" json:"-"`
	ResetToken       *string        `gorm:"size:128" json:"-"`
	ResetTokenExpiry *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// CareerStats are per-status counts over career applications.
type CareerStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Reviewed    int64 `json:"reviewed"`
	Shortlisted int64 `json:"shortlisted"`
	Rejected    int64 `json:"rejected"`
	Hired       int64 `json:"hired"`
}

// MeetingStats are per-status counts over meeting requests.
type MeetingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
}

// ContactStats are per-status counts over contact messages.
type ContactStats struct {
	Total        int64 `json:"total"`
	Unread       int64 `json:"unread"`
	Read         int64 `json:"read"`
	Replied      int64 `json:"replied"`
	HighPriority int64 `json:"highPriority"`
}

// JobStats summarize the posting directory.
type JobStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByType   map[string]int64 `json:"byType"`
}
