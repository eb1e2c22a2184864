package dto

import "github.com/campushelp/helpdesk/internal/app/models"

// Response source labels for ChatResponse.Source.
const (
	SourceGuardrail     = "guardrail"
	SourceKnowledgeBase = "knowledge_base"
	SourceAIFallback    = "ai_fallback"
	SourceFallback      = "fallback"
)

// ChatRequest is the payload for POST /chat. The profile is optional;
// without it the bot still answers, just not personalized.
type ChatRequest struct {
	Message string                 `json:"message"`
	Profile *models.StudentProfile `json:"profile,omitempty"`
}

// ChatResponse carries the bot's reply and where it came from.
type ChatResponse struct {
	Response string `json:"response"`
	Source   string `json:"source"`
}

// ChatErrorResponse is returned for malformed chat requests.
type ChatErrorResponse struct {
	Error string `json:"error"`
}
