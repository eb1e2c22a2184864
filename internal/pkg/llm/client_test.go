package llm

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestGenerate_UnconfiguredClient(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())

	assert.False(t, client.Configured())

	_, err := client.Generate(context.Background(), "when do admissions open")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrInvalidResponse},
		{"unprocessable", http.StatusUnprocessableEntity, ErrInvalidResponse},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(&openai.APIError{HTTPStatusCode: tt.status})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOutOfScope(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())

	assert.True(t, client.OutOfScope("You should vote for the party that..."))
	assert.True(t, client.OutOfScope("Bitcoin is a great investment"))
	assert.False(t, client.OutOfScope("Admissions open in June, apply on the college website."))
}

func TestDefaultSystemPrompt(t *testing.T) {
	prompt := DefaultSystemPrompt("ABC College")
	assert.Contains(t, prompt, "ABC College")
	assert.Contains(t, prompt, "Only answer questions related to college")
}
