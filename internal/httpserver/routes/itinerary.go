package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/handlers"
)

func init() { Register("itinerary", registerItinerary) }

func registerItinerary(r chi.Router, d deps.Deps) {
	r.Get("/api/itinerary/{id}", handlers.GetItinerary(d))
}
