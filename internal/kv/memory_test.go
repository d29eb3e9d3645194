package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesKey(t *testing.T) {
	assert.Equal(t, "disrupt-asia-favorites:abc", FavoritesKey("abc"))
}

func TestMemoryAbsentKey(t *testing.T) {
	m := NewMemory()

	v, found, err := m.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", "[]"))
	v, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", v)

	require.NoError(t, m.Set(ctx, "k", "[1]"))
	v, _, _ = m.Get(ctx, "k")
	assert.Equal(t, "[1]", v, "Set overwrites")

	require.NoError(t, m.Delete(ctx, "k"))
	_, found, _ = m.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 0, m.Len())

	require.NoError(t, m.Delete(ctx, "k"), "deleting an absent key is not an error")
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()

	assert.Error(t, m.Set(ctx, "k", "v"))
	_, _, err := m.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, m.Ping(ctx))
}

func TestMemoryCountFavorites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, FavoritesKey("a"), "[]"))
	require.NoError(t, m.Set(ctx, FavoritesKey("b"), "[]"))
	require.NoError(t, m.Set(ctx, "other", "x"))

	n, err := m.CountFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
