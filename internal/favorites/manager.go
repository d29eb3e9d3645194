package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
)

// ErrInvalidProfile is returned for an empty profile ID.
var ErrInvalidProfile = domain.ErrInvalidProfile

// Manager keeps one loaded Store per profile in memory.
//
// Tearing a store down only drops the handle: persisted favorites stay in
// storage and the next Open loads them again.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	storage kv.Storage
	catalog Catalog
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	opts    []Option
}

type session struct {
	store    *Store
	ready    chan struct{} // closed once store.Load returned
	lastUsed time.Time
}

// NewManager creates a manager. opts are applied to every store it opens;
// WithClock and WithMetrics are also used by the manager itself.
func NewManager(storage kv.Storage, catalog Catalog, log logger.Logger, opts ...Option) *Manager {
	st := newSettings(opts)
	return &Manager{
		sessions: make(map[string]*session),
		storage:  storage,
		catalog:  catalog,
		log:      log,
		metrics:  st.metrics,
		now:      st.now,
		opts:     opts,
	}
}

// Open returns the loaded store of profileID, creating and loading it on
// first use. Concurrent callers for the same profile share one Load.
func (m *Manager) Open(ctx context.Context, profileID string) (*Store, error) {
	if profileID == "" {
		return nil, ErrInvalidProfile
	}

	m.mu.Lock()
	sess, ok := m.sessions[profileID]
	if ok {
		sess.lastUsed = m.now()
		m.mu.Unlock()

		select {
		case <-sess.ready:
			return sess.store, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	sess = &session{
		store:    New(profileID, m.storage, m.catalog, m.log, m.opts...),
		ready:    make(chan struct{}),
		lastUsed: m.now(),
	}
	m.sessions[profileID] = sess
	open := len(m.sessions)
	m.mu.Unlock()

	m.metrics.OpenSessions(open)

	// Load uses its own context so a caller that gives up does not leave
	// a half-loaded store behind for the others.
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	records := sess.store.Load(loadCtx)
	cancel()
	close(sess.ready)

	m.log.Debug("favorites session opened",
		logger.String("profile", profileID),
		logger.Int("favorites", len(records)))

	return sess.store, nil
}

// Close tears down the in-memory store of profileID. It reports whether
// one was open. A handle obtained before Close rejects further mutations
// with ErrClosed.
func (m *Manager) Close(profileID string) bool {
	m.mu.Lock()
	sess, ok := m.sessions[profileID]
	m.mu.Unlock()
	if !ok {
		return false
	}

	<-sess.ready

	m.mu.Lock()
	if m.sessions[profileID] != sess {
		m.mu.Unlock()
		return false
	}
	// The store is closed before its entry is released, so a new Open
	// cannot load ahead of a write still in flight.
	sess.store.close()
	delete(m.sessions, profileID)
	open := len(m.sessions)
	m.mu.Unlock()

	m.metrics.OpenSessions(open)
	m.log.Debug("favorites session closed", logger.String("profile", profileID))
	return true
}

// ReapIdle closes every store not used for longer than ttl and returns how
// many were closed. Stores still loading are skipped.
func (m *Manager) ReapIdle(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	reaped := 0
	for id, sess := range m.sessions {
		select {
		case <-sess.ready:
		default:
			continue
		}
		if sess.lastUsed.Before(cutoff) {
			sess.store.close()
			delete(m.sessions, id)
			reaped++
		}
	}
	open := len(m.sessions)
	m.mu.Unlock()

	if reaped > 0 {
		m.metrics.OpenSessions(open)
	}
	return reaped
}

// Shutdown closes every open store.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	n := len(m.sessions)
	for _, sess := range m.sessions {
		sess.store.close()
	}
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	m.metrics.OpenSessions(0)
	m.log.Info("favorites sessions closed", logger.Int("count", n))
}

// Count returns the number of open stores.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Storage returns the backend the stores write to.
func (m *Manager) Storage() kv.Storage {
	return m.storage
}
