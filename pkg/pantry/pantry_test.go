package pantry

import (
	"testing"

	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestServicePersistsEveryMutation(t *testing.T) {
	svc, store := newTestService(t)

	st, err := svc.Get("chat-1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())

	_, changed, err := svc.Add("chat-1", "Egg")
	require.NoError(t, err)
	assert.True(t, changed)

	_, added, err := svc.AddBulk("chat-1", "milk; egg; flour")
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "flour"}, added)

	// A fresh service over the same store sees the same products.
	st, err = New(store).Get("chat-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"egg", "milk", "flour"}, st.Products)

	st, err = svc.Remove("chat-1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "flour"}, st.Products)

	_, err = svc.Remove("chat-1", 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, svc.Reset("chat-1"))
	st, err = svc.Get("chat-1")
	require.NoError(t, err)
	assert.Empty(t, st.Products)

	var doc struct{}
	err = store.Get(storage.Key(storage.SlotProducts, "chat-1"), &doc)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Resetting a scope with nothing stored is fine.
	assert.NoError(t, svc.Reset("chat-unknown"))
}

func TestServiceScopesAreIsolated(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Add("a", "egg")
	require.NoError(t, err)

	st, err := svc.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestServiceAddNoop(t *testing.T) {
	svc, _ := newTestService(t)

	_, changed, err := svc.Add("a", "  ")
	require.NoError(t, err)
	assert.False(t, changed)
}
