package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Loaded     *int   `json:"loaded,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Source     string `json:"source,omitempty"`
	Backend    string `json:"backend,omitempty"`
	Profiles   *int   `json:"profiles,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startups := d.Catalog.Count()
		lastReload := d.Catalog.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		sessions := d.Favorites.Count()
		investors := d.Itinerary.Count()

		components := map[string]componentStatus{
			"catalog": {
				OK:         startups > 0,
				Loaded:     &startups,
				LastReload: lastReloadStr,
				Source:     d.Catalog.Source(),
			},
			"storage": checkStorage(r.Context(), d),
			"sessions": {
				OK:     true,
				Loaded: &sessions,
			},
			"itinerary": {
				OK:     true,
				Loaded: &investors,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical" // nothing to list or favorite
	}
	if s, ok := components["storage"]; ok && !s.OK {
		return "degraded" // favorites are not persisted
	}
	return "ok"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	storage := d.Favorites.Storage()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := storage.Ping(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: storage.Name(),
			Impact:  "favorites-not-persisted",
			Error:   err.Error(),
		}
	}
	status := componentStatus{
		OK:      true,
		Backend: storage.Name(),
	}
	if counter, ok := storage.(kv.ProfileCounter); ok {
		if n, err := counter.CountFavorites(ctx); err == nil {
			status.Profiles = &n
		}
	}
	return status
}
