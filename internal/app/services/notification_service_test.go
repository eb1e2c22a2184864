package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushelp/helpdesk/internal/app/models"
)

func target(dept, semester, section string) models.NotificationTarget {
	return models.NotificationTarget{Dept: dept, Semester: semester, Section: section}
}

func TestFilterFor(t *testing.T) {
	svc := NewNotificationService()
	csProfile := &models.StudentProfile{Dept: "CS", Semester: "3", Section: "A"}

	notifications := []models.Notification{
		{ID: "1", Title: "everyone", Target: target("all", "all", "all")},
		{ID: "2", Title: "cs only", Target: target("CS", "all", "all")},
		{ID: "3", Title: "ee only", Target: target("EE", "all", "all")},
		{ID: "4", Title: "cs 3 a", Target: target("CS", "3", "A")},
		{ID: "5", Title: "cs 3 b", Target: target("CS", "3", "B")},
	}

	t.Run("matches wildcard and exact fields", func(t *testing.T) {
		visible := svc.FilterFor(csProfile, notifications)
		require.Len(t, visible, 3)
		assert.Equal(t, "everyone", visible[0].Title)
		assert.Equal(t, "cs only", visible[1].Title)
		assert.Equal(t, "cs 3 a", visible[2].Title)
	})

	t.Run("nil profile only sees all-wildcard targets", func(t *testing.T) {
		visible := svc.FilterFor(nil, notifications)
		require.Len(t, visible, 1)
		assert.Equal(t, "everyone", visible[0].Title)
	})

	t.Run("input order preserved", func(t *testing.T) {
		visible := svc.FilterFor(csProfile, notifications)
		assert.Equal(t, []string{"1", "2", "4"}, []string{visible[0].ID, visible[1].ID, visible[2].ID})
	})

	t.Run("input not mutated", func(t *testing.T) {
		svc.FilterFor(csProfile, notifications)
		assert.Equal(t, "ee only", notifications[2].Title)
		assert.Len(t, notifications, 5)
	})
}

func TestStamp(t *testing.T) {
	svc := NewNotificationService()

	notifications := []models.Notification{
		{Title: "bare"},
		{ID: "keep-id", Date: "2026-01-01", Priority: models.PriorityHigh, Target: target("CS", "3", "A"), Title: "complete"},
	}

	svc.Stamp(notifications)

	t.Run("fills missing fields", func(t *testing.T) {
		n := notifications[0]
		assert.NotEmpty(t, n.ID)
		assert.NotEmpty(t, n.Date)
		assert.Equal(t, models.PriorityNormal, n.Priority)
		assert.Equal(t, target("all", "all", "all"), n.Target)
	})

	t.Run("keeps provided fields", func(t *testing.T) {
		n := notifications[1]
		assert.Equal(t, "keep-id", n.ID)
		assert.Equal(t, "2026-01-01", n.Date)
		assert.Equal(t, models.PriorityHigh, n.Priority)
		assert.Equal(t, target("CS", "3", "A"), n.Target)
	})
}
