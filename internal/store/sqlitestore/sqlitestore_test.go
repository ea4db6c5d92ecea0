package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/dash/internal/store"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "dash.db"))

	_, err := s.Get("tasks")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "dash.db"))

	require.NoError(t, s.Set("tasks", []byte(`[1]`)))
	require.NoError(t, s.Set("tasks", []byte(`[2]`)))

	got, err := s.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dash.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("tasks", []byte(`["kept"]`)))
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	got, err := second.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(got))
}
