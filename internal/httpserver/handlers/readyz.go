package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once a catalog is loaded and the favorites storage
// answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Catalog.Count() == 0 {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "catalog not loaded"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Favorites.Storage().Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "storage unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
