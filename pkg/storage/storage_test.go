package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSetGetDelete(t *testing.T) {
	s := newTestStore(t)
	key := Key(SlotProducts, "chat-1")
	assert.Equal(t, "products:chat-1", key)

	require.NoError(t, s.Set(key, doc{Name: "a", Items: []string{"egg", "milk"}}))

	var got doc
	require.NoError(t, s.Get(key, &got))
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, []string{"egg", "milk"}, got.Items)

	require.NoError(t, s.Delete(key))
	err := s.Get(key, &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFileSystem(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", doc{Name: "persisted"}))
	require.NoError(t, s.Close())

	s, err = New(dir)
	require.NoError(t, err)
	defer s.Close()

	var got doc
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "persisted", got.Name)
}

func TestCloseTwice(t *testing.T) {
	s, err := NewInMemory()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestDeviceIDIsStable(t *testing.T) {
	s := newTestStore(t)

	first, err := s.DeviceID()
	require.NoError(t, err)
	assert.Len(t, first, 36)

	second, err := s.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
