package memstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/dash/internal/store"
)

func TestStore_GetMissing(t *testing.T) {
	_, err := New().Get("tasks")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ValuesAreCopied(t *testing.T) {
	s := New()
	in := []byte("abc")
	require.NoError(t, s.Set("k", in))
	in[0] = 'z'

	out, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[1] = 'z'
	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestStore_FailWrites(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("k", []byte("1")))

	boom := errors.New("quota exceeded")
	s.FailWrites(boom)
	assert.ErrorIs(t, s.Set("k", []byte("2")), boom)

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "1", string(got), "failed write must not change the slot")
	assert.Equal(t, 1, s.Writes())

	s.FailWrites(nil)
	require.NoError(t, s.Set("k", []byte("3")))
	assert.Equal(t, 2, s.Writes())
}
