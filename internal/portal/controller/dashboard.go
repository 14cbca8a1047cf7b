package controller

import (
	"context"
	"fmt"

	"github.com/code2cash/backend/internal/portal/models"
	"go.uber.org/zap"
)

const recentActivityLimit = 5

// DashboardRepository gathers the cross-entity reads behind the overview.
type DashboardRepository interface {
	CareerStats(ctx context.Context) (*models.CareerStats, error)
	MeetingStats(ctx context.Context) (*models.MeetingStats, error)
	ContactStats(ctx context.Context) (*models.ContactStats, error)
	RecentCareers(ctx context.Context, n int) ([]models.Career, error)
	RecentMeetings(ctx context.Context, n int) ([]models.Meeting, error)
	RecentContacts(ctx context.Context, n int) ([]models.Contact, error)
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	Stats struct {
		Careers  *models.CareerStats  `json:"careers"`
		Meetings *models.MeetingStats `json:"meetings"`
		Contacts *models.ContactStats `json:"contacts"`
	} `json:"stats"`
	RecentActivities struct {
		Applications []models.Career  `json:"applications"`
		Meetings     []models.Meeting `json:"meetings"`
		Messages     []models.Contact `json:"messages"`
	} `json:"recentActivities"`
}

// DashboardService aggregates counts and recent activity for the console's
// landing page.
type DashboardService struct {
	repo   DashboardRepository
	logger *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(repo DashboardRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger.Named("dashboard_service")}
}

// Build assembles the overview.
func (s *DashboardService) Build(ctx context.Context) (*Overview, error) {
	var o Overview
	var err error

	if o.Stats.Careers, err = s.repo.CareerStats(ctx); err != nil {
		return nil, fmt.Errorf("failed to load career stats: %w", err)
	}
	if o.Stats.Meetings, err = s.repo.MeetingStats(ctx); err != nil {
		return nil, fmt.Errorf("failed to load meeting stats: %w", err)
	}
	if o.Stats.Contacts, err = s.repo.ContactStats(ctx); err != nil {
		return nil, fmt.Errorf("failed to load contact stats: %w", err)
	}

	if o.RecentActivities.Applications, err = s.repo.RecentCareers(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent applications: %w", err)
	}
	if o.RecentActivities.Meetings, err = s.repo.RecentMeetings(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent meetings: %w", err)
	}
	if o.RecentActivities.Messages, err = s.repo.RecentContacts(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	return &o, nil
}
