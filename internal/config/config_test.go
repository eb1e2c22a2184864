package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 500, cfg.Chat.MaxMessageLength)
	assert.Equal(t, 0.6, cfg.Chat.SimilarityThreshold)
	assert.NotEmpty(t, cfg.Chat.BlockedWords)
	assert.NotEmpty(t, cfg.Chat.CollegeKeywords)
	assert.NotEmpty(t, cfg.Messages.Fallback)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
}

func TestLoadConfig_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
jwt:
  secret: "file-secret"
chat:
  similarity_threshold: 0.7
`), 0o644))

	t.Setenv("SERVER_PORT", "9001")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// env beats file, file beats defaults
	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 0.7, cfg.Chat.SimilarityThreshold)
	assert.Equal(t, 500, cfg.Chat.MaxMessageLength)
}

func TestLoadConfig_Validation(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `server: {port: "8080"}`))
		assert.ErrorContains(t, err, "JWT secret")
	})

	t.Run("bad similarity threshold", func(t *testing.T) {
		path := writeConfig(t, `
jwt: {secret: "x"}
chat: {similarity_threshold: 1.5}
`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "similarity threshold")
	})

	t.Run("bad llm timeout", func(t *testing.T) {
		path := writeConfig(t, `
jwt: {secret: "x"}
llm: {timeout: "soon"}
`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "LLM timeout")
	})

	t.Run("admin account without password", func(t *testing.T) {
		path := writeConfig(t, `
jwt: {secret: "x"}
admin:
  accounts:
    - username: "admin"
`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "password")
	})
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Timeout = "3s"
	cfg.JWT.AccessTokenExpiration = "2h"

	assert.Equal(t, 3*time.Second, cfg.LLMTimeout())
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenExp())

	cfg.LLM.Timeout = "garbage"
	cfg.JWT.AccessTokenExpiration = "garbage"
	assert.Equal(t, 10*time.Second, cfg.LLMTimeout())
	assert.Equal(t, time.Hour, cfg.AccessTokenExp())
}
