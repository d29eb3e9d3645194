package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/handlers"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/mw"
)

func init() { Register("favorites", registerFavorites) }

// Mutations share one limiter so PUT and DELETE draw from the same bucket.
func registerFavorites(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.RateLimit.Burst,
		PerMinute:  d.RateLimit.PerMinute,
		TrustProxy: d.TrustProxy,
	})

	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(mw.Profile(true))

		r.Get("/", handlers.ListFavorites(d))
		r.Get("/count", handlers.CountFavorites(d))
		r.With(limit).Put("/{id}", handlers.AddFavorite(d))
		r.With(limit).Delete("/{id}", handlers.RemoveFavorite(d))
		r.With(limit).Delete("/", handlers.ClearFavorites(d))
	})
}
