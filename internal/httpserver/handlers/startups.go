package handlers

import (
	"net/http"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/favorites"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/mw"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/listing"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

type startupView struct {
	domain.Startup
	Favorite bool `json:"favorite"`
}

type startupsResponse struct {
	Startups []startupView `json:"startups"`
	Page     listing.Page  `json:"pagination"`
	facets
}

// facets are the values the listing filters accept.
type facets struct {
	Domains      []string `json:"domains"`
	Designations []string `json:"designations"`
	Quick        []string `json:"quick"`
}

// ListStartups serves the filtered, paginated catalog. When the caller
// has a profile each startup carries its favorite flag.
func ListStartups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filtered := listing.Startups(d.Catalog.All(), parseFilter(r))
		number, perPage := parsePage(r)
		page := listing.Paginate(len(filtered), number, perPage)

		store := optionalStore(d, r)
		items := listing.Slice(filtered, page)
		views := make([]startupView, len(items))
		for i, s := range items {
			views[i] = startupView{Startup: s, Favorite: store != nil && store.IsFavorite(s.ID)}
		}

		domains := d.Catalog.Domains()
		if domains == nil {
			domains = []string{}
		}
		writeJSON(w, http.StatusOK, startupsResponse{
			Startups: views,
			Page:     page,
			facets: facets{
				Domains:      domains,
				Designations: listing.Designations,
				Quick:        listing.QuickFilters,
			},
		})
	}
}

// GetStartup serves one catalog entry.
func GetStartup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := startupID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s, ok := d.Catalog.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, domain.ErrStartupNotFound.Error())
			return
		}

		store := optionalStore(d, r)
		writeJSON(w, http.StatusOK, startupView{
			Startup:  s,
			Favorite: store != nil && store.IsFavorite(id),
		})
	}
}

// optionalStore opens the caller's favorites when a profile is known.
// Failures only cost the favorite flags.
func optionalStore(d deps.Deps, r *http.Request) *favorites.Store {
	profile := mw.ProfileID(r.Context())
	if profile == "" || d.Favorites == nil {
		return nil
	}
	store, err := d.Favorites.Open(r.Context(), profile)
	if err != nil {
		d.Logger.Debug("favorites unavailable for listing", logger.Error(err))
		return nil
	}
	return store
}
