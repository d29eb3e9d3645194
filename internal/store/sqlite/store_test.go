package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreAbsentKey(t *testing.T) {
	s := openTemp(t)

	v, found, err := s.Get(context.Background(), "disrupt-asia-favorites:p1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestStoreUpsertAndDelete(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	key := "disrupt-asia-favorites:p1"

	require.NoError(t, s.Set(ctx, key, `[{"id":7}]`))
	require.NoError(t, s.Set(ctx, key, `[]`))

	v, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Delete(ctx, key))
	_, found, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "persisted"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "persisted", v)
	assert.NoError(t, s.Ping(ctx))
	assert.Equal(t, "sqlite", s.Name())
}

func TestStoreCountFavorites(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Set(ctx, "disrupt-asia-favorites:a", "[]"))
	require.NoError(t, s.Set(ctx, "disrupt-asia-favorites:b", "[]"))
	require.NoError(t, s.Set(ctx, "unrelated", "x"))

	n, err := s.CountFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
