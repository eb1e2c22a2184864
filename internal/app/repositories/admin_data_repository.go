package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
)

// AdminDataRepository owns the admin-managed JSON document. Reads and
// writes go through an RWMutex; a write replaces the whole document (last
// write wins) and lands on disk via a temp-file rename so a crash
// mid-write cannot truncate the previous copy.
type AdminDataRepository struct {
	path   string
	logger zerolog.Logger

	mu   sync.RWMutex
	data *models.AdminData
}

// NewAdminDataRepository creates the repository and loads the current
// document from disk.
func NewAdminDataRepository(path string, logger zerolog.Logger) (*AdminDataRepository, error) {
	r := &AdminDataRepository{
		path:   path,
		logger: logger,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads the document. A missing or unparseable file degrades to an
// empty document with a warning; chat keeps working, just unpersonalized.
func (r *AdminDataRepository) load() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn().Str("path", r.path).Msg("Admin data file not found, starting with an empty document")
			r.data = emptyAdminData()
			return nil
		}
		return fmt.Errorf("%w: read admin data: %v", apperrors.ErrStorage, err)
	}

	var data models.AdminData
	if err := json.Unmarshal(raw, &data); err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("Admin data file is not valid JSON, starting with an empty document")
		r.data = emptyAdminData()
		return nil
	}

	r.data = &data
	r.logger.Info().Str("path", r.path).Msg("Admin data loaded")
	return nil
}

// Get returns a deep copy of the current document so callers cannot
// mutate shared state.
func (r *AdminDataRepository) Get() *models.AdminData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAdminData(r.data)
}

// Replace swaps in a new document and persists it. The whole document is
// written in one operation; concurrent replaces are last-write-wins.
func (r *AdminDataRepository) Replace(data *models.AdminData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode admin data: %v", apperrors.ErrStorage, err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write admin data: %v", apperrors.ErrStorage, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("%w: replace admin data: %v", apperrors.ErrStorage, err)
	}

	r.data = cloneAdminData(data)
	return nil
}

func emptyAdminData() *models.AdminData {
	return &models.AdminData{
		Departments:   []models.Department{},
		Semesters:     []string{},
		Sections:      []string{},
		Notifications: []models.Notification{},
	}
}

// cloneAdminData deep-copies the document via a JSON round trip. The
// document is small; simplicity beats a hand-written copier here.
func cloneAdminData(data *models.AdminData) *models.AdminData {
	raw, err := json.Marshal(data)
	if err != nil {
		return emptyAdminData()
	}
	var clone models.AdminData
	if err := json.Unmarshal(raw, &clone); err != nil {
		return emptyAdminData()
	}
	return &clone
}
