package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushelp/helpdesk/internal/app/models"
)

func newTestRepo(t *testing.T) (*AdminDataRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admin_data.json")
	repo, err := NewAdminDataRepository(path, zerolog.Nop())
	require.NoError(t, err)
	return repo, path
}

func TestAdminDataRepository_MissingFileStartsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	data := repo.Get()
	require.NotNil(t, data)
	assert.Empty(t, data.Departments)
	assert.Empty(t, data.Notifications)
}

func TestAdminDataRepository_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo, err := NewAdminDataRepository(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, repo.Get().Departments)
}

func TestAdminDataRepository_ReplaceRoundTrip(t *testing.T) {
	repo, path := newTestRepo(t)

	doc := &models.AdminData{
		Departments: []models.Department{{Code: "CS", Name: "Computer Science"}},
		Semesters:   []string{"1", "2"},
		Sections:    []string{"A"},
		FeeStructure: map[string]string{
			"B.Tech": "85,000 per year",
		},
	}
	require.NoError(t, repo.Replace(doc))

	t.Run("in-memory copy reflects the write", func(t *testing.T) {
		got := repo.Get()
		assert.Equal(t, doc.Departments, got.Departments)
		assert.Equal(t, doc.FeeStructure, got.FeeStructure)
	})

	t.Run("a fresh repository reads the same document", func(t *testing.T) {
		fresh, err := NewAdminDataRepository(path, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, doc.Departments, fresh.Get().Departments)
		assert.Equal(t, doc.Semesters, fresh.Get().Semesters)
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		_, err := os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})
}

func TestAdminDataRepository_GetReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Replace(&models.AdminData{
		Departments: []models.Department{{Code: "CS", Name: "Computer Science"}},
	}))

	first := repo.Get()
	first.Departments[0].Name = "mutated"

	second := repo.Get()
	assert.Equal(t, "Computer Science", second.Departments[0].Name)
}

func TestAdminDataRepository_LastWriteWins(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Replace(&models.AdminData{Semesters: []string{"1"}}))
	require.NoError(t, repo.Replace(&models.AdminData{Semesters: []string{"2"}}))

	assert.Equal(t, []string{"2"}, repo.Get().Semesters)
}
