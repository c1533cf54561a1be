package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := t.TempDir()
	store, err := Open(Config{Path: path, SyncWrites: false})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestPutGet(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Put("key", []byte("value")))
	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestGetMissingKey(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Put("key", []byte("value")))
	require.NoError(t, store.Delete("key"))
	_, err := store.Get("key")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete("missing"))
}

func TestBatchCommitsAtomically(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Put("old", []byte("x")))

	batch := &Batch{}
	batch.Put("a", []byte("1"))
	batch.Put("b", []byte("2"))
	batch.Delete("old")
	require.Equal(t, 3, batch.Len())
	require.NoError(t, store.Write(batch))

	a, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), a)
	b, err := store.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), b)
	_, err = store.Get("old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	path := t.TempDir()
	store, err := Open(Config{Path: path, SyncWrites: false})
	require.NoError(t, err)
	require.NoError(t, store.Put("key", []byte("persisted")))
	require.NoError(t, store.Close())

	reopened, err := Open(Config{Path: path, SyncWrites: false})
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), value)
}

func TestOverwrite(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Put("key", []byte("first")))
	require.NoError(t, store.Put("key", []byte("second")))
	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), value)
}
