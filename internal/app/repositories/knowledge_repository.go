package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
)

// KnowledgeRepository loads the static knowledge base. The document is
// read once at startup and immutable at runtime; edits require a restart.
type KnowledgeRepository struct {
	path   string
	logger zerolog.Logger
}

// NewKnowledgeRepository creates a repository for the given file path
func NewKnowledgeRepository(path string, logger zerolog.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		path:   path,
		logger: logger,
	}
}

// Load reads and validates the knowledge base. A missing or unparseable
// file degrades to an empty knowledge base with a warning so the chat
// path can still serve personalized intents and the AI fallback. An entry
// without patterns or responses is a configuration mistake and fails the
// load outright.
func (r *KnowledgeRepository) Load() (*models.KnowledgeBase, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn().Str("path", r.path).Msg("Knowledge base file not found, starting with an empty knowledge base")
			return &models.KnowledgeBase{}, nil
		}
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var kb models.KnowledgeBase
	if err := json.Unmarshal(raw, &kb); err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("Knowledge base file is not valid JSON, starting with an empty knowledge base")
		return &models.KnowledgeBase{}, nil
	}

	for _, intent := range kb.Intents {
		if len(intent.Patterns) == 0 || len(intent.Responses) == 0 {
			return nil, fmt.Errorf("%w: tag %q", apperrors.ErrKnowledgeEntryInvalid, intent.Tag)
		}
	}

	r.logger.Info().Int("intents", len(kb.Intents)).Str("path", r.path).Msg("Knowledge base loaded")
	return &kb, nil
}
