package storage

import (
	"stash/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoNow = time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)

func TestBudgetCapRepository_PutGetDelete(t *testing.T) {
	store := NewMemoryStore(0)
	repo := NewBudgetCapRepository(store)

	_, err := repo.Get("test1", "Dining")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Put("test1", "Dining", models.NewBudgetCapEntry(8000, repoNow)))
	entry, err := repo.Get("test1", "Dining")
	require.NoError(t, err)
	assert.Equal(t, 8000.0, entry.Value)
	assert.Equal(t, repoNow.UnixMilli(), entry.Timestamp)

	raw, ok := store.Get(budgetCapKey("test1", "Dining"))
	require.True(t, ok)
	assert.JSONEq(t, `{"value":8000,"timestamp":1720602000000,"expiresAt":1720774800000}`, raw)

	require.NoError(t, repo.Delete("test1", "Dining"))
	_, err = repo.Get("test1", "Dining")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBudgetCapRepository_Corrupt(t *testing.T) {
	store := NewMemoryStore(0)
	repo := NewBudgetCapRepository(store)
	require.NoError(t, store.Set(budgetCapKey("test1", "Dining"), "{not json"))

	_, err := repo.Get("test1", "Dining")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestBudgetCapRepository_CategoriesScopedToUser(t *testing.T) {
	repo := NewBudgetCapRepository(NewMemoryStore(0))
	require.NoError(t, repo.Put("test1", "Dining", models.NewBudgetCapEntry(1, repoNow)))
	require.NoError(t, repo.Put("test1", "Transport", models.NewBudgetCapEntry(2, repoNow)))
	require.NoError(t, repo.Put("test10", "Dining", models.NewBudgetCapEntry(3, repoNow)))

	assert.Equal(t, []string{"Dining", "Transport"}, repo.Categories("test1"))
	assert.Equal(t, []string{"Dining"}, repo.Categories("test10"))
	assert.Len(t, repo.Keys(), 3)
}

func TestBudgetCapRepository_PutQuotaError(t *testing.T) {
	repo := NewBudgetCapRepository(NewMemoryStore(1))
	require.NoError(t, repo.Put("test1", "Dining", models.NewBudgetCapEntry(1, repoNow)))
	err := repo.Put("test1", "Transport", models.NewBudgetCapEntry(2, repoNow))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestSessionRepository_OneSessionPerUser(t *testing.T) {
	repo := NewSessionRepository(NewMemoryStore(0))

	require.NoError(t, repo.Put(models.NewPersonalitySession("test1", models.HeavySpender, models.MaxSaver, repoNow)))
	require.NoError(t, repo.Put(models.NewPersonalitySession("test1", models.HeavySpender, models.MediumSpender, repoNow)))
	require.NoError(t, repo.Put(models.NewPersonalitySession("test2", models.MaxSaver, models.HeavySpender, repoNow)))

	s, err := repo.Get("test1")
	require.NoError(t, err)
	assert.Equal(t, models.MediumSpender, s.TemporaryPersonality)
	assert.Equal(t, []string{"test1", "test2"}, repo.Usernames())

	require.NoError(t, repo.Delete("test1"))
	_, err = repo.Get("test1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepository_Corrupt(t *testing.T) {
	store := NewMemoryStore(0)
	repo := NewSessionRepository(store)
	require.NoError(t, store.Set(sessionKey("test1"), "garbage"))

	_, err := repo.Get("test1")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestResetMarkerRepository(t *testing.T) {
	repo := NewResetMarkerRepository(NewMemoryStore(0))

	_, ok := repo.Get("test1")
	assert.False(t, ok)

	require.NoError(t, repo.Put("test1", "2024-6"))
	v, ok := repo.Get("test1")
	assert.True(t, ok)
	assert.Equal(t, "2024-6", v)

	_, ok = repo.Get("test2")
	assert.False(t, ok, "markers are per user")

	require.NoError(t, repo.Delete("test1"))
	_, ok = repo.Get("test1")
	assert.False(t, ok)
}
