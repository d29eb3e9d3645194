// Package favorites implements the per-profile favorites set: a write-through
// snapshot of catalog startups that expires 30 days after each record was
// created.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
)

// ExpirationDays is re-exported for callers that only import favorites.
const ExpirationDays = domain.ExpirationDays

var (
	// ErrNotLoaded is returned by mutations issued before Load.
	ErrNotLoaded = errors.New("favorites not loaded")

	// ErrClosed is returned by mutations on a store its Manager tore down.
	// The caller must Open the profile again.
	ErrClosed = errors.New("favorites store closed")
)

// Catalog is the read-only startup lookup the store snapshots from.
type Catalog interface {
	Get(id int) (domain.Startup, bool)
}

// Store is one profile's favorites.
//
// The in-memory set is authoritative once loaded; every mutation rewrites
// the whole set to storage. Storage failures are logged and swallowed.
type Store struct {
	mu      sync.Mutex
	key     string
	storage kv.Storage
	catalog Catalog
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	records []domain.FavoriteRecord
	loaded  bool
	closed  bool
}

type settings struct {
	now     func() time.Time
	metrics *metrics.Metrics
}

// Option configures a Store or a Manager.
type Option func(*settings)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithMetrics records operations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

func newSettings(opts []Option) settings {
	st := settings{now: time.Now}
	for _, opt := range opts {
		opt(&st)
	}
	return st
}

// New creates an unloaded store for profileID.
func New(profileID string, storage kv.Storage, catalog Catalog, log logger.Logger, opts ...Option) *Store {
	st := newSettings(opts)
	return &Store{
		key:     kv.FavoritesKey(profileID),
		storage: storage,
		catalog: catalog,
		log:     log.With(logger.String("profile", profileID)),
		metrics: st.metrics,
		now:     st.now,
		records: []domain.FavoriteRecord{},
	}
}

// Load reads the persisted set, drops expired and malformed records and
// writes the survivors back if anything was dropped. It never fails:
// storage and decoding problems yield an empty set.
func (s *Store) Load(ctx context.Context) []domain.FavoriteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.readLocked(ctx)
	s.loaded = true
	return s.snapshotLocked()
}

func (s *Store) readLocked(ctx context.Context) []domain.FavoriteRecord {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Error("failed to read favorites", logger.String("backend", s.storage.Name()), logger.Error(err))
		s.metrics.StorageError("get")
		return []domain.FavoriteRecord{}
	}
	if !found {
		return []domain.FavoriteRecord{}
	}

	parsed, malformed, err := decode(raw)
	if err != nil {
		s.log.Error("stored favorites are corrupt, starting empty", logger.Error(err))
		s.metrics.CorruptPayload()
		return []domain.FavoriteRecord{}
	}
	if malformed > 0 {
		s.log.Warn("dropped malformed favorite records", logger.Int("count", malformed))
	}

	valid, expired := domain.FilterExpired(parsed, s.now())
	if expired > 0 {
		s.log.Info("dropped expired favorites", logger.Int("count", expired), logger.Int("remaining", len(valid)))
		s.metrics.ExpiredDropped(expired)
	}

	if malformed+expired > 0 {
		s.persistLocked(ctx, valid)
	}
	return valid
}

// decode parses a persisted payload. A payload that is not a JSON array is
// an error. Array elements that do not decode, carry a non-positive ID or
// repeat an earlier ID are skipped and counted as malformed.
func decode(raw string) ([]domain.FavoriteRecord, int, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, 0, fmt.Errorf("invalid json: %w", err)
	}
	if _, ok := value.([]any); !ok {
		return nil, 0, fmt.Errorf("stored data is not an array (got %T)", value)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, 0, fmt.Errorf("invalid json array: %w", err)
	}

	records := make([]domain.FavoriteRecord, 0, len(elems))
	seen := make(map[int]bool, len(elems))
	malformed := 0
	for _, e := range elems {
		var r domain.FavoriteRecord
		if err := json.Unmarshal(e, &r); err != nil || r.ID <= 0 || seen[r.ID] {
			malformed++
			continue
		}
		seen[r.ID] = true
		records = append(records, r)
	}
	return records, malformed, nil
}

// Add favorites the startup with the given ID. It reports added=false when
// the startup was already a favorite.
func (s *Store) Add(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writableLocked(); err != nil {
		return false, err
	}

	startup, ok := s.catalog.Get(id)
	if !ok {
		s.log.Error("startup not found", logger.Int("startup_id", id))
		s.metrics.FavoriteOp("add", "not_found")
		return false, fmt.Errorf("add favorite %d: %w", id, domain.ErrStartupNotFound)
	}

	if s.indexLocked(id) >= 0 {
		s.log.Debug("startup already in favorites", logger.Int("startup_id", id))
		s.metrics.FavoriteOp("add", "noop")
		return false, nil
	}

	s.records = append(s.records, domain.NewFavoriteRecord(startup, s.now()))
	s.persistLocked(ctx, s.records)

	s.log.Debug("added favorite", logger.Int("startup_id", id), logger.Int("count", len(s.records)))
	s.metrics.FavoriteOp("add", "ok")
	return true, nil
}

// Remove drops the startup from the favorites. Removing an absent ID is
// not an error; the set is written through either way.
func (s *Store) Remove(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writableLocked(); err != nil {
		return false, err
	}

	removed := false
	if i := s.indexLocked(id); i >= 0 {
		s.records = append(s.records[:i:i], s.records[i+1:]...)
		removed = true
	}
	s.persistLocked(ctx, s.records)

	s.log.Debug("removed favorite", logger.Int("startup_id", id), logger.Bool("removed", removed), logger.Int("count", len(s.records)))
	if removed {
		s.metrics.FavoriteOp("remove", "ok")
	} else {
		s.metrics.FavoriteOp("remove", "noop")
	}
	return removed, nil
}

// Clear empties the set.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writableLocked(); err != nil {
		return err
	}

	s.records = []domain.FavoriteRecord{}
	s.persistLocked(ctx, s.records)

	s.metrics.FavoriteOp("clear", "ok")
	return nil
}

// IsFavorite reports membership. It is always false before Load.
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexLocked(id) >= 0
}

// Favorites returns a copy of the set in insertion order.
func (s *Store) Favorites() []domain.FavoriteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded
}

// DaysRemaining is the display countdown of a record created at
// timestampMs, using the store's clock.
func (s *Store) DaysRemaining(timestampMs int64) int {
	return domain.DaysRemaining(timestampMs, s.now())
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}

// close rejects every later mutation. A mutation already holding the lock
// completes first.
func (s *Store) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Store) writableLocked() error {
	switch {
	case s.closed:
		return ErrClosed
	case !s.loaded:
		return ErrNotLoaded
	}
	return nil
}

func (s *Store) indexLocked(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []domain.FavoriteRecord {
	out := make([]domain.FavoriteRecord, len(s.records))
	copy(out, s.records)
	return out
}

// persistLocked writes records as a JSON array. Failures are logged only;
// the next successful write replaces whatever storage holds.
func (s *Store) persistLocked(ctx context.Context, records []domain.FavoriteRecord) {
	if records == nil {
		records = []domain.FavoriteRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		s.log.Error("failed to encode favorites", logger.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.log.Error("failed to write favorites", logger.String("backend", s.storage.Name()), logger.Error(err))
		s.metrics.StorageError("set")
	}
}
