package handlers

import (
	"errors"
	"net/http"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/favorites"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/mw"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/listing"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

type favoriteView struct {
	domain.FavoriteRecord
	DaysRemaining int `json:"daysRemaining"`
}

type favoritesResponse struct {
	Favorites      []favoriteView `json:"favorites"`
	Count          int            `json:"count"`
	ExpirationDays int            `json:"expirationDays"`
	Page           listing.Page   `json:"pagination"`
}

type countResponse struct {
	Count int `json:"count"`
}

type addResponse struct {
	Added bool `json:"added"`
	Count int  `json:"count"`
}

// ListFavorites serves the caller's favorites, filtered and paginated,
// with the days left before each record expires.
func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := openStore(d, w, r)
		if !ok {
			return
		}

		all := store.Favorites()
		filtered := listing.Favorites(all, parseFilter(r))
		number, perPage := parsePage(r)
		page := listing.Paginate(len(filtered), number, perPage)

		items := listing.Slice(filtered, page)
		views := make([]favoriteView, len(items))
		for i, rec := range items {
			views[i] = favoriteView{FavoriteRecord: rec, DaysRemaining: store.DaysRemaining(rec.Timestamp)}
		}

		writeJSON(w, http.StatusOK, favoritesResponse{
			Favorites:      views,
			Count:          len(all),
			ExpirationDays: favorites.ExpirationDays,
			Page:           page,
		})
	}
}

// CountFavorites serves the header badge count.
func CountFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := openStore(d, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Count: store.Count()})
	}
}

// AddFavorite answers 201 when the startup was added, 200 when it was
// already a favorite and 404 when the catalog does not know it.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := startupID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var (
			added bool
			count int
		)
		err = mutate(d, w, r, func(s *favorites.Store) (err error) {
			added, err = s.Add(r.Context(), id)
			count = s.Count()
			return err
		})
		switch {
		case errors.Is(err, errResponded):
			return
		case errors.Is(err, domain.ErrStartupNotFound):
			writeError(w, http.StatusNotFound, domain.ErrStartupNotFound.Error())
			return
		case err != nil:
			d.Logger.Error("add favorite failed", logger.Int("startup_id", id), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		writeJSON(w, status, addResponse{Added: added, Count: count})
	}
}

// RemoveFavorite is idempotent.
func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := startupID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		err = mutate(d, w, r, func(s *favorites.Store) error {
			_, err := s.Remove(r.Context(), id)
			return err
		})
		if errors.Is(err, errResponded) {
			return
		}
		if err != nil {
			d.Logger.Error("remove favorite failed", logger.Int("startup_id", id), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClearFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := mutate(d, w, r, func(s *favorites.Store) error {
			return s.Clear(r.Context())
		})
		if errors.Is(err, errResponded) {
			return
		}
		if err != nil {
			d.Logger.Error("clear favorites failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// EndSession drops the caller's in-memory store. Persisted favorites are
// kept and reloaded on the next request.
func EndSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if profile := mw.ProfileID(r.Context()); profile != "" {
			d.Favorites.Close(profile)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// errResponded means the error response was already written.
var errResponded = errors.New("response written")

// mutate runs op on the caller's store. A store torn down between Open and
// op is opened again once.
func mutate(d deps.Deps, w http.ResponseWriter, r *http.Request, op func(*favorites.Store) error) error {
	for attempt := 0; ; attempt++ {
		store, ok := openStore(d, w, r)
		if !ok {
			return errResponded
		}
		err := op(store)
		if !errors.Is(err, favorites.ErrClosed) {
			return err
		}
		if attempt > 0 {
			writeError(w, http.StatusServiceUnavailable, "favorites unavailable")
			return errResponded
		}
	}
}

// openStore returns the caller's loaded store, or writes the error
// response and reports false.
func openStore(d deps.Deps, w http.ResponseWriter, r *http.Request) (*favorites.Store, bool) {
	profile := mw.ProfileID(r.Context())
	if profile == "" {
		writeError(w, http.StatusBadRequest, "missing profile")
		return nil, false
	}

	store, err := d.Favorites.Open(r.Context(), profile)
	if err != nil {
		d.Logger.Warn("failed to open favorites", logger.String("profile", profile), logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "favorites unavailable")
		return nil, false
	}
	return store, true
}
