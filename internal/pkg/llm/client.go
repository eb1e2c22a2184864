// Package llm is the boundary to the external AI collaborator. It is only
// invoked when the rule matcher finds nothing, and every failure mode maps
// to one of three errors the chat pipeline knows how to hide from the user.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// Fallback failure taxonomy. The chat pipeline substitutes a canned
// apology for any of these; the raw error is logged, never surfaced.
var (
	ErrUnavailable     = errors.New("fallback responder unavailable")
	ErrRateLimited     = errors.New("fallback responder rate limited")
	ErrInvalidResponse = errors.New("fallback responder returned an unusable response")
)

// Config drives the fallback client. BaseURL selects the provider: both
// OpenAI and Groq speak the same chat-completions protocol.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	Timeout      time.Duration
	SystemPrompt string
}

// Client wraps the OpenAI-compatible chat-completions API.
type Client struct {
	api    *openai.Client
	cfg    Config
	logger zerolog.Logger
}

// NewClient builds the fallback client. With no API key configured the
// client stays inert and Generate reports ErrUnavailable without any
// network traffic.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 150
	}

	var api *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		api = openai.NewClientWithConfig(clientCfg)
	}

	return &Client{api: api, cfg: cfg, logger: logger}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.api != nil
}

// Generate asks the model for an answer to the user's message under the
// configured system prompt. The call is timeout-bounded; a timeout is
// reported as ErrUnavailable.
func (c *Client) Generate(ctx context.Context, message string) (string, error) {
	if c.api == nil {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.7,
		TopP:        0.9,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.cfg.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrInvalidResponse
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrInvalidResponse
	}
	return answer, nil
}

// classify maps transport and API errors onto the fallback taxonomy while
// keeping the original error in the chain for logging.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// outOfScopeIndicators are phrases that signal the model drifted outside
// the college domain despite the system prompt.
var outOfScopeIndicators = []string{
	"political party", "vote for", "election", "religious belief",
	"god", "prayer", "worship",
	"relationship advice", "dating tips", "love life",
	"stock market", "cryptocurrency", "bitcoin", "invest in",
	"medical diagnosis", "prescription", "you should take",
	"legal advice", "lawyer", "sue them",
}

// OutOfScope checks a generated answer for signs it left the college
// domain. The caller replaces such answers with the off-topic message.
func (c *Client) OutOfScope(answer string) bool {
	lower := strings.ToLower(answer)
	for _, indicator := range outOfScopeIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// DefaultSystemPrompt builds the instruction set that keeps the model
// inside the college domain.
func DefaultSystemPrompt(collegeName string) string {
	return fmt.Sprintf(`You are a helpful assistant for %s's helpdesk chatbot.

STRICT RULES YOU MUST FOLLOW:
1. Only answer questions related to college, education, and campus life
2. If asked about topics outside college scope, politely decline
3. Never make up information - if unsure, say "Please contact the college admin"
4. Keep responses concise and helpful (2-3 sentences max)
5. Be polite and professional
6. Never share personal opinions on sensitive topics
7. Don't provide information about specific students or staff
8. If asked to do something unethical, refuse politely

If you're not sure about something specific to this college, always say:
"I don't have specific information about that. Please contact the college administration for accurate details."`, collegeName)
}
