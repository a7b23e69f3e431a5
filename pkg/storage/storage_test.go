package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	bdb, err := bbolt.Open(filepath.Join(t.TempDir(), "storage.bolt"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, bdb.Close())
	})
	return bdb
}

func TestDBStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewDBStorage(newTestDB(t), []byte("objects"))

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "a", []byte("hello")))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	require.NoError(t, s.Del(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBStorageList(t *testing.T) {
	ctx := context.Background()
	raw := newTestDB(t)
	s := NewDBStorage(raw, []byte("objects")).(ListStorage)

	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, "b", []byte("22")))

	seen := map[string]int{}
	err := s.List(ctx, func(id string, b []byte) error {
		seen[id] = len(b)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)
}

func TestCachedStoragePutFillsCache(t *testing.T) {
	ctx := context.Background()
	cache := NewDBStorage(newTestDB(t), []byte("cache")).(ListStorage)
	permanent := NewDBStorage(newTestDB(t), []byte("permanent"))

	cs, err := NewCachedStorage(cache, permanent, 1<<20)
	require.NoError(t, err)

	require.NoError(t, cs.Put(ctx, "a", []byte("payload")))

	got, err := cs.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	// The cache tier itself should now have the object (put through cs.Put).
	fromCache, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), fromCache)
}

func TestCachedStorageDelPropagates(t *testing.T) {
	ctx := context.Background()
	cache := NewDBStorage(newTestDB(t), []byte("cache")).(ListStorage)
	permanent := NewDBStorage(newTestDB(t), []byte("permanent"))

	cs, err := NewCachedStorage(cache, permanent, 1<<20)
	require.NoError(t, err)

	require.NoError(t, cs.Put(ctx, "a", []byte("payload")))
	require.NoError(t, cs.Del(ctx, "a"))

	_, err = cs.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
