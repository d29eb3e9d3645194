package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/catalog"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/favorites"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/mw"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

const profile = "3f1c1d5e-8d2a-4b7e-9c1f-2a6b5e4d3c21"

func newDeps() (deps.Deps, *kv.Memory) {
	cat := catalog.New()
	cat.Replace([]domain.Startup{{ID: 7, StartupName: "Acme"}, {ID: 8, StartupName: "Beta Labs"}}, "file")
	storage := kv.NewMemory()
	return deps.Deps{
		Logger:    logger.NewNop(),
		Catalog:   cat,
		Favorites: favorites.NewManager(storage, cat, logger.NewNop()),
	}, storage
}

func profileRequest() *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/api/favorites/7", nil)
	return r.WithContext(mw.WithProfileID(r.Context(), profile))
}

func TestMutateReopensClosedStore(t *testing.T) {
	d, _ := newDeps()
	r := profileRequest()
	rec := httptest.NewRecorder()

	var seen []*favorites.Store
	err := mutate(d, rec, r, func(s *favorites.Store) error {
		seen = append(seen, s)
		if len(seen) == 1 {
			// the session ends between Open and the write
			d.Favorites.Close(profile)
		}
		_, err := s.Add(r.Context(), 7)
		return err
	})

	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])

	current, err := d.Favorites.Open(r.Context(), profile)
	require.NoError(t, err)
	assert.True(t, current.IsFavorite(7))
}

func TestMutateGivesUpAfterOneRetry(t *testing.T) {
	d, storage := newDeps()
	r := profileRequest()
	rec := httptest.NewRecorder()

	calls := 0
	err := mutate(d, rec, r, func(s *favorites.Store) error {
		calls++
		d.Favorites.Close(profile)
		_, err := s.Add(r.Context(), 7)
		return err
	})

	assert.ErrorIs(t, err, errResponded)
	assert.Equal(t, 2, calls)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, found, err := storage.Get(r.Context(), kv.FavoritesKey(profile))
	require.NoError(t, err)
	assert.False(t, found, "closed stores write nothing")
}
