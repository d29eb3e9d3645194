package favorites

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// clock is a settable time source safe for concurrent use.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(storage kv.Storage, c *clock) *Manager {
	return NewManager(storage, acmeCatalog(), logger.NewNop(), WithClock(c.Now), WithMetrics(metrics.New()))
}

func TestManagerOpenLoads(t *testing.T) {
	storage := kv.NewMemory()
	c := &clock{now: testNow}
	seed(t, storage,
		domain.FavoriteRecord{Startup: domain.Startup{ID: 7}, Timestamp: testNow.Add(-31 * domain.Day).UnixMilli()},
		domain.FavoriteRecord{Startup: domain.Startup{ID: 8}, Timestamp: testNow.UnixMilli()},
	)
	m := newTestManager(storage, c)

	s, err := m.Open(context.Background(), profile)
	require.NoError(t, err)

	assert.True(t, s.Loaded())
	assert.Equal(t, []int{8}, ids(s.Favorites()))
	assert.Equal(t, 1, m.Count())
}

func TestManagerOpenReusesStore(t *testing.T) {
	m := newTestManager(kv.NewMemory(), &clock{now: testNow})

	a, err := m.Open(context.Background(), "a")
	require.NoError(t, err)
	again, err := m.Open(context.Background(), "a")
	require.NoError(t, err)
	b, err := m.Open(context.Background(), "b")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, m.Count())
}

func TestManagerRejectsEmptyProfile(t *testing.T) {
	m := newTestManager(kv.NewMemory(), &clock{now: testNow})

	_, err := m.Open(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestManagerProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kv.NewMemory(), &clock{now: testNow})

	a, _ := m.Open(ctx, "a")
	b, _ := m.Open(ctx, "b")
	_, err := a.Add(ctx, 7)
	require.NoError(t, err)

	assert.True(t, a.IsFavorite(7))
	assert.False(t, b.IsFavorite(7))
}

func TestManagerCloseKeepsPersistedRecords(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	m := newTestManager(storage, &clock{now: testNow})

	s, _ := m.Open(ctx, profile)
	_, _ = s.Add(ctx, 7)

	assert.True(t, m.Close(profile))
	assert.False(t, m.Close(profile), "second close is a no-op")
	assert.Equal(t, 0, m.Count())

	reopened, err := m.Open(ctx, profile)
	require.NoError(t, err)
	assert.NotSame(t, s, reopened)
	assert.Equal(t, []int{7}, ids(reopened.Favorites()))
}

func TestManagerReapIdle(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: testNow}
	m := newTestManager(kv.NewMemory(), c)

	_, _ = m.Open(ctx, "idle")
	c.Advance(20 * time.Minute)
	_, _ = m.Open(ctx, "active")
	c.Advance(15 * time.Minute)

	reaped := m.ReapIdle(30 * time.Minute)

	assert.Equal(t, 1, reaped)
	assert.Equal(t, 1, m.Count())
	_, err := m.Open(ctx, "active")
	require.NoError(t, err)
}

func TestManagerReapIdleDoesNotEvaluateExpiration(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	c := &clock{now: testNow}
	m := newTestManager(storage, c)

	s, _ := m.Open(ctx, profile)
	_, _ = s.Add(ctx, 7)

	// the favorite expires while the session is still open
	c.Advance(31 * domain.Day)
	assert.True(t, s.IsFavorite(7), "no background eviction while a store is open")

	assert.Equal(t, 1, m.ReapIdle(time.Hour))
	assert.Len(t, stored(t, storage), 1, "reaping leaves storage alone")

	reopened, _ := m.Open(ctx, profile)
	assert.Empty(t, reopened.Favorites(), "expiration applies on the next load")
}

func TestManagerShutdown(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kv.NewMemory(), &clock{now: testNow})
	_, _ = m.Open(ctx, "a")
	_, _ = m.Open(ctx, "b")

	m.Shutdown()

	assert.Equal(t, 0, m.Count())
}

func TestManagerConcurrentOpen(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	storage := &flakyStorage{Storage: kv.NewMemory()}
	m := newTestManager(storage, &clock{now: testNow})

	var wg sync.WaitGroup
	stores := make([]*Store, 50)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := m.Open(ctx, profile)
			if err != nil {
				t.Errorf("Open() error = %v", err)
				return
			}
			if !s.Loaded() {
				t.Error("Open() handed out a store before Load finished")
			}
			_, _ = s.Add(ctx, 7+i%3)
			stores[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range stores[1:] {
		assert.Same(t, stores[0], s)
	}
	assert.ElementsMatch(t, []int{7, 8, 9}, ids(stores[0].Favorites()))
}

func TestManagerOpenCanceledWhileLoading(t *testing.T) {
	m := newTestManager(kv.NewMemory(), &clock{now: testNow})

	// a session whose load has not finished yet
	m.sessions[profile] = &session{ready: make(chan struct{}), lastUsed: testNow}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Open(ctx, profile)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, m.ReapIdle(0), "loading sessions are never reaped")
}

func TestManagerClosedStoreRejectsMutations(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	m := newTestManager(storage, &clock{now: testNow})

	stale, err := m.Open(ctx, profile)
	require.NoError(t, err)
	require.True(t, m.Close(profile))

	current, err := m.Open(ctx, profile)
	require.NoError(t, err)
	_, err = current.Add(ctx, 8)
	require.NoError(t, err)

	_, err = stale.Add(ctx, 9)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = stale.Remove(ctx, 8)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, stale.Clear(ctx), ErrClosed)

	assert.Equal(t, []int{8}, ids(stored(t, storage)), "the stale handle wrote nothing")
}

func TestManagerReapAndShutdownCloseStores(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: testNow}
	m := newTestManager(kv.NewMemory(), c)

	reaped, _ := m.Open(ctx, "idle")
	c.Advance(time.Hour)
	live, _ := m.Open(ctx, "live")
	require.Equal(t, 1, m.ReapIdle(30*time.Minute))

	_, err := reaped.Add(ctx, 7)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = live.Add(ctx, 7)
	require.NoError(t, err)

	m.Shutdown()
	_, err = live.Add(ctx, 8)
	assert.ErrorIs(t, err, ErrClosed)
}
