package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/handlers"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/mw"
)

func init() { Register("session", registerSession, mw.Profile(false)) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Delete("/api/session", handlers.EndSession(d))
}
