package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/app/models/dto"
	"github.com/campushelp/helpdesk/internal/app/repositories"
	"github.com/campushelp/helpdesk/internal/pkg/guardrails"
	"github.com/campushelp/helpdesk/internal/pkg/llm"
	"github.com/campushelp/helpdesk/internal/pkg/textmatch"
)

// stubFallback records Generate calls and returns a fixed outcome.
type stubFallback struct {
	answer     string
	err        error
	outOfScope bool
	calls      int
}

func (s *stubFallback) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func (s *stubFallback) OutOfScope(_ string) bool {
	return s.outOfScope
}

func newTestChatService(t *testing.T, fallback *stubFallback, data *models.AdminData) *ChatService {
	t.Helper()

	guard := guardrails.NewFilter(guardrails.Config{
		MinLength:    2,
		MaxLength:    500,
		BlockedWords: []string{"hack"},
		Messages: guardrails.Messages{
			Empty:          "please enter a message",
			BlockedContent: "blocked",
		},
	})

	matcher := textmatch.NewMatcher([]models.Intent{
		{Tag: "greeting", Patterns: []string{"hi", "hello"}, Responses: []string{"Hello there!"}},
	}, 0.6)

	repo, err := repositories.NewAdminDataRepository(filepath.Join(t.TempDir(), "admin.json"), zerolog.Nop())
	require.NoError(t, err)
	if data != nil {
		require.NoError(t, repo.Replace(data))
	}

	return NewChatService(guard, matcher, repo, NewNotificationService(), fallback, ChatMessages{
		Fallback:   "sorry, contact the admin office",
		HighDemand: "high demand, try again",
		OffTopic:   "college matters only please",
	}, zerolog.Nop())
}

func TestHandleMessage_GuardrailRejectionStopsPipeline(t *testing.T) {
	fallback := &stubFallback{answer: "never"}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "how to hack the portal", nil)

	assert.Equal(t, dto.SourceGuardrail, reply.Source)
	assert.Equal(t, "blocked", reply.Response)
	assert.Zero(t, fallback.calls, "rejected messages must not reach the AI fallback")
}

func TestHandleMessage_EmptyMessage(t *testing.T) {
	svc := newTestChatService(t, &stubFallback{}, nil)

	reply := svc.HandleMessage(context.Background(), "   ", nil)

	assert.Equal(t, dto.SourceGuardrail, reply.Source)
	assert.Equal(t, "please enter a message", reply.Response)
}

func TestHandleMessage_KnowledgeBaseMatch(t *testing.T) {
	fallback := &stubFallback{answer: "never"}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "hello", nil)

	assert.Equal(t, dto.SourceKnowledgeBase, reply.Source)
	assert.Equal(t, "Hello there!", reply.Response)
	assert.Zero(t, fallback.calls)
}

func TestHandleMessage_FallbackSuccess(t *testing.T) {
	fallback := &stubFallback{answer: "Admissions open in June."}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "when do admissions open", nil)

	assert.Equal(t, dto.SourceAIFallback, reply.Source)
	assert.Equal(t, "Admissions open in June.", reply.Response)
	assert.Equal(t, 1, fallback.calls)
}

func TestHandleMessage_FallbackUnavailable(t *testing.T) {
	fallback := &stubFallback{err: llm.ErrUnavailable}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "when do admissions open", nil)

	assert.Equal(t, dto.SourceFallback, reply.Source)
	assert.Equal(t, "sorry, contact the admin office", reply.Response)
}

func TestHandleMessage_FallbackRateLimited(t *testing.T) {
	fallback := &stubFallback{err: llm.ErrRateLimited}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "when do admissions open", nil)

	assert.Equal(t, dto.SourceFallback, reply.Source)
	assert.Equal(t, "high demand, try again", reply.Response)
}

func TestHandleMessage_FallbackOutOfScope(t *testing.T) {
	fallback := &stubFallback{answer: "I can only help with college queries.", outOfScope: true}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "when do admissions open", nil)

	assert.Equal(t, dto.SourceAIFallback, reply.Source)
	assert.Equal(t, "college matters only please", reply.Response)
}

func TestHandleMessage_PersonalizedTimetableNeedsProfile(t *testing.T) {
	fallback := &stubFallback{answer: "never"}
	svc := newTestChatService(t, fallback, nil)

	reply := svc.HandleMessage(context.Background(), "show my timetable", nil)

	assert.Equal(t, dto.SourceKnowledgeBase, reply.Source)
	assert.Equal(t, profileRequiredMessage, reply.Response)
	assert.Zero(t, fallback.calls)
}

func TestHandleMessage_PersonalizedTimetable(t *testing.T) {
	data := &models.AdminData{
		Timetables: map[string]models.Timetable{
			"CS_3_A": {
				"Monday": []string{"Data Structures", "Maths III"},
			},
		},
	}
	svc := newTestChatService(t, &stubFallback{}, data)
	profile := &models.StudentProfile{Dept: "CS", DeptName: "Computer Science", Semester: "3", Section: "A"}

	reply := svc.HandleMessage(context.Background(), "show my timetable", profile)

	assert.Equal(t, dto.SourceKnowledgeBase, reply.Source)
	assert.Contains(t, reply.Response, "YOUR TIMETABLE")
	assert.Contains(t, reply.Response, "Data Structures")
}

func TestHandleMessage_PersonalizedNotifications(t *testing.T) {
	data := &models.AdminData{
		Notifications: []models.Notification{
			{
				ID: "1", Title: "Exam postponed", Message: "DS exam moved to Friday", Type: "exam",
				Priority: models.PriorityHigh, Date: "2026-08-20",
				Target: models.NotificationTarget{Dept: "CS", Semester: "all", Section: "all"},
			},
			{
				ID: "2", Title: "EE workshop", Message: "for EE only", Type: "event",
				Priority: models.PriorityNormal, Date: "2026-08-21",
				Target: models.NotificationTarget{Dept: "EE", Semester: "all", Section: "all"},
			},
		},
	}
	svc := newTestChatService(t, &stubFallback{}, data)
	profile := &models.StudentProfile{Dept: "CS", Semester: "3", Section: "A"}

	reply := svc.HandleMessage(context.Background(), "any new notifications", profile)

	assert.Equal(t, dto.SourceKnowledgeBase, reply.Source)
	assert.Contains(t, reply.Response, "Exam postponed")
	assert.Contains(t, reply.Response, "[IMPORTANT]")
	assert.NotContains(t, reply.Response, "EE workshop")
}

func TestHandleMessage_CustomSection(t *testing.T) {
	data := &models.AdminData{
		CustomSections: []models.CustomSection{
			{Name: "Bus Routes", Keywords: []string{"bus"}, Content: "12 routes cover the city."},
		},
	}
	svc := newTestChatService(t, &stubFallback{}, data)

	reply := svc.HandleMessage(context.Background(), "is there a college bus", nil)

	assert.Equal(t, dto.SourceKnowledgeBase, reply.Source)
	assert.Contains(t, reply.Response, "12 routes cover the city.")
}

func TestHandleMessage_RoomLookup(t *testing.T) {
	data := &models.AdminData{
		RoomDirectory: map[string]models.Room{
			"201": {Floor: "First", Wing: "B", Type: "Computer Lab", Capacity: 40},
		},
	}
	svc := newTestChatService(t, &stubFallback{}, data)

	reply := svc.HandleMessage(context.Background(), "where is room 201", nil)

	assert.Equal(t, dto.SourceKnowledgeBase, reply.Source)
	assert.Contains(t, reply.Response, "Room 201")
	assert.Contains(t, reply.Response, "Computer Lab")
}
