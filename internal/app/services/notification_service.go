package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/campushelp/helpdesk/internal/app/models"
)

// NotificationService applies notification targeting and prepares
// admin-posted notifications for storage.
type NotificationService struct{}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// FilterFor returns the notifications visible to the given profile. A
// notification matches iff every target field equals "all" or the
// profile's corresponding field exactly. Input ordering is preserved
// (most-recent-first, as admins prepend) and nothing is mutated.
func (s *NotificationService) FilterFor(profile *models.StudentProfile, notifications []models.Notification) []models.Notification {
	visible := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.Target.Matches(profile) {
			visible = append(visible, n)
		}
	}
	return visible
}

// Stamp fills generated fields on admin-posted notifications: missing IDs
// get a UUID, missing dates get today, missing priorities default to
// normal and empty target fields widen to the wildcard.
func (s *NotificationService) Stamp(notifications []models.Notification) {
	today := time.Now().Format("2006-01-02")
	for i := range notifications {
		n := &notifications[i]
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.Date == "" {
			n.Date = today
		}
		if n.Priority == "" {
			n.Priority = models.PriorityNormal
		}
		if n.Target.Dept == "" {
			n.Target.Dept = models.TargetAll
		}
		if n.Target.Semester == "" {
			n.Target.Semester = models.TargetAll
		}
		if n.Target.Section == "" {
			n.Target.Section = models.TargetAll
		}
	}
}
