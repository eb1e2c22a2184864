package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/app/repositories"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
)

// AdminService manages the shared admin document.
type AdminService struct {
	repo     *repositories.AdminDataRepository
	notifier *NotificationService
	logger   zerolog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(repo *repositories.AdminDataRepository, notifier *NotificationService, logger zerolog.Logger) *AdminService {
	return &AdminService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// GetData returns the full admin document.
func (s *AdminService) GetData() *models.AdminData {
	return s.repo.Get()
}

// ReplaceData validates and persists a new version of the document. The
// replace is whole-document; whatever the admin UI sends becomes the
// document, so missing sections are an explicit deletion.
func (s *AdminService) ReplaceData(data *models.AdminData) error {
	if data == nil {
		return apperrors.NewValidationError("admin data must not be empty")
	}

	s.notifier.Stamp(data.Notifications)
	data.LastUpdated = time.Now().Format("2006-01-02 15:04")

	if err := s.repo.Replace(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist admin data")
		return err
	}

	s.logger.Info().
		Int("departments", len(data.Departments)).
		Int("notifications", len(data.Notifications)).
		Msg("Admin data replaced")
	return nil
}
