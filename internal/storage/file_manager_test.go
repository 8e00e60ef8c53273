package storage

import (
	"errors"
	"os"
	"path/filepath"
	"stash/internal/testutil"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_SaveAndLoad_Zstd(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	path := filepath.Join(t.TempDir(), "state.dat")
	src := NewMemoryStore(0)
	require.NoError(t, src.Set(budgetCapKey("test1", "Dining"), `{"value":8000}`))
	require.NoError(t, src.Set(resetMarkerKey("test1"), "2024-6"))

	require.NoError(t, NewFileManager(comp, src, &testutil.MockLogger{}).SaveToFile(path))
	assert.False(t, src.Dirty())
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	dst := NewMemoryStore(0)
	require.NoError(t, NewFileManager(comp, dst, &testutil.MockLogger{}).LoadFromFile(path))
	srcEntries, _ := src.Snapshot()
	dstEntries, _ := dst.Snapshot()
	assert.Equal(t, srcEntries, dstEntries)
}

func TestFileManager_WriteDuringSaveStaysDirty(t *testing.T) {
	store := NewMemoryStore(0)
	require.NoError(t, store.Set("a", "1"))
	comp := &testutil.MockCompressor{CompressFn: func(val []byte) ([]byte, error) {
		require.NoError(t, store.Set("b", "2"))
		return val, nil
	}}
	path := filepath.Join(t.TempDir(), "state.dat")

	require.NoError(t, NewFileManager(comp, store, &testutil.MockLogger{}).SaveToFile(path))
	assert.True(t, store.Dirty())

	saved := NewMemoryStore(0)
	require.NoError(t, NewFileManager(&testutil.MockCompressor{}, saved, &testutil.MockLogger{}).LoadFromFile(path))
	_, ok := saved.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, saved.Len())
}

func TestFileManager_LoadMissingFile(t *testing.T) {
	store := NewMemoryStore(0)
	fm := NewFileManager(&testutil.MockCompressor{}, store, &testutil.MockLogger{})

	assert.NoError(t, fm.LoadFromFile(filepath.Join(t.TempDir(), "absent.dat")))
	assert.Equal(t, 0, store.Len())
}

func TestFileManager_LoadFlatExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	flat, _ := json.Marshal(map[string]string{"monthly_reset/test1": "2024-5"})
	require.NoError(t, os.WriteFile(path, flat, 0644))

	store := NewMemoryStore(0)
	logger := &testutil.MockLogger{}
	require.NoError(t, NewFileManager(&testutil.MockCompressor{}, store, logger).LoadFromFile(path))

	v, ok := store.Get("monthly_reset/test1")
	assert.True(t, ok)
	assert.Equal(t, "2024-5", v)
	assert.Equal(t, 2, logger.Count("warn"))
}

func TestFileManager_LoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	fm := NewFileManager(&testutil.MockCompressor{}, NewMemoryStore(0), &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_SaveCompressError(t *testing.T) {
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) {
		return nil, errors.New("compress error")
	}}
	store := NewMemoryStore(0)
	require.NoError(t, store.Set("k", "v"))

	err := NewFileManager(comp, store, &testutil.MockLogger{}).SaveToFile(filepath.Join(t.TempDir(), "x.dat"))
	assert.Error(t, err)
	assert.True(t, store.Dirty())
}

func TestFileManager_Close(t *testing.T) {
	comp := &testutil.MockCompressor{}
	NewFileManager(comp, NewMemoryStore(0), &testutil.MockLogger{}).Close()
	assert.True(t, comp.Closed)
}
