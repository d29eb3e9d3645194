package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/handlers"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/mw"
)

func init() { Register("startups", registerStartups, mw.Profile(false)) }

func registerStartups(r chi.Router, d deps.Deps) {
	r.Get("/api/startups", handlers.ListStartups(d))
	r.Get("/api/startups/{id}", handlers.GetStartup(d))
}
