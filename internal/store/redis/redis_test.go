package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextWait(t *testing.T) {
	tests := []struct {
		wait, max, want time.Duration
	}{
		{wait: time.Second, max: 10 * time.Second, want: 2 * time.Second},
		{wait: 4 * time.Second, max: 10 * time.Second, want: 8 * time.Second},
		{wait: 8 * time.Second, max: 10 * time.Second, want: 10 * time.Second},
		{wait: 10 * time.Second, max: 10 * time.Second, want: 10 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nextWait(tt.wait, tt.max))
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	valid := ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: time.Second,
		RetryInterval:  time.Millisecond,
		MaxWait:        time.Second,
		PingTimeout:    time.Second,
	}
	require.NoError(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
	}{
		{name: "missing addr", mutate: func(o *ConnectOptions) { o.Addr = "" }},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }},
		{name: "negative warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			assert.Error(t, opts.validate())
		})
	}
}

func TestConnectGivesUp(t *testing.T) {
	opts := ConnectOptions{
		Addr:           "127.0.0.1:1", // nothing listens here
		DialTimeout:    50 * time.Millisecond,
		ConnectTimeout: 200 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
	}

	client, err := Connect(context.Background(), opts, logger.NewNop())
	require.Error(t, err)
	assert.Nil(t, client)
}

// liveClient connects to PORTAL_TEST_REDIS_ADDR or skips.
func liveClient(t *testing.T) *Storage {
	t.Helper()
	addr := os.Getenv("PORTAL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PORTAL_TEST_REDIS_ADDR not set")
	}

	client, err := Connect(context.Background(), ConnectOptions{
		Addr:           addr,
		ConnectTimeout: 2 * time.Second,
		RetryInterval:  100 * time.Millisecond,
		MaxWait:        time.Second,
		PingTimeout:    time.Second,
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewStorage(client, time.Minute)
}

func TestStorageLive(t *testing.T) {
	s := liveClient(t)
	ctx := context.Background()
	key := kv.FavoritesKey("redis-test-profile")
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, key, "[]"))
	v, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", v)

	n, err := s.CountFavorites(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestCatalogCacheLive(t *testing.T) {
	s := liveClient(t)
	ctx := context.Background()
	cache := NewCatalogCache(s.client)
	t.Cleanup(func() {
		_ = s.Delete(ctx, KeyCatalogSnapshot)
		_ = s.Delete(ctx, KeyCatalogSavedAt)
	})

	require.NoError(t, cache.SaveCatalog(ctx, []domain.Startup{{ID: 7, StartupName: "Acme"}}))

	startups, found, err := cache.GetCatalog(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, startups, 1)
	assert.Equal(t, "Acme", startups[0].StartupName)

	savedAt, err := cache.CatalogSavedAt(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), savedAt, time.Minute)
}
