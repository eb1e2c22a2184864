package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/app/models/dto"
	"github.com/campushelp/helpdesk/internal/app/repositories"
	"github.com/campushelp/helpdesk/internal/pkg/guardrails"
	"github.com/campushelp/helpdesk/internal/pkg/llm"
	"github.com/campushelp/helpdesk/internal/pkg/textmatch"
)

// FallbackResponder is the external AI collaborator invoked on no-match.
type FallbackResponder interface {
	Generate(ctx context.Context, message string) (string, error)
	OutOfScope(answer string) bool
}

// ChatMessages are the canned replies the pipeline falls back to.
type ChatMessages struct {
	Fallback   string
	HighDemand string
	OffTopic   string
}

// Reply is the outcome of handling one chat message.
type Reply struct {
	Response string
	Source   string
}

// ChatService runs a message through the guardrail filter, the
// personalized intents, the knowledge-base matcher and finally the AI
// fallback. Exactly one stage produces the reply; a guardrail rejection
// stops the pipeline before any matching happens.
type ChatService struct {
	guard     *guardrails.Filter
	matcher   *textmatch.Matcher
	adminRepo *repositories.AdminDataRepository
	notifier  *NotificationService
	fallback  FallbackResponder
	messages  ChatMessages
	logger    zerolog.Logger
}

// NewChatService wires the chat pipeline
func NewChatService(
	guard *guardrails.Filter,
	matcher *textmatch.Matcher,
	adminRepo *repositories.AdminDataRepository,
	notifier *NotificationService,
	fallback FallbackResponder,
	messages ChatMessages,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		guard:     guard,
		matcher:   matcher,
		adminRepo: adminRepo,
		notifier:  notifier,
		fallback:  fallback,
		messages:  messages,
		logger:    logger,
	}
}

// HandleMessage answers one chat message. It never returns an error;
// every failure mode terminates in a user-presentable reply.
func (s *ChatService) HandleMessage(ctx context.Context, message string, profile *models.StudentProfile) Reply {
	outcome := s.guard.Check(message)
	if !outcome.Allowed {
		s.logger.Info().Str("reason", string(outcome.Reason)).Msg("Message rejected by guardrails")
		return Reply{Response: outcome.Message, Source: dto.SourceGuardrail}
	}
	cleaned := outcome.Message

	if answer, ok := s.personalizedAnswer(cleaned, profile); ok {
		return Reply{Response: answer, Source: dto.SourceKnowledgeBase}
	}

	if match, ok := s.matcher.Match(cleaned); ok {
		s.logger.Debug().
			Str("intent", match.Intent.Tag).
			Float64("score", match.Score).
			Msg("Knowledge base match")
		return Reply{Response: match.Response(), Source: dto.SourceKnowledgeBase}
	}

	answer, err := s.fallback.Generate(ctx, cleaned)
	if err != nil {
		s.logger.Warn().Err(err).Msg("AI fallback failed")
		if errors.Is(err, llm.ErrRateLimited) {
			return Reply{Response: s.messages.HighDemand, Source: dto.SourceFallback}
		}
		return Reply{Response: s.messages.Fallback, Source: dto.SourceFallback}
	}

	if s.fallback.OutOfScope(answer) {
		s.logger.Warn().Msg("AI fallback answer out of scope, replaced with off-topic message")
		return Reply{Response: s.messages.OffTopic, Source: dto.SourceAIFallback}
	}

	return Reply{Response: answer, Source: dto.SourceAIFallback}
}
