package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
)

// GetItinerary serves one investor's travel plan.
func GetItinerary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		inv, err := d.Itinerary.Get(id)
		if errors.Is(err, domain.ErrInvestorNotFound) {
			writeError(w, http.StatusNotFound, domain.ErrInvestorNotFound.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}
