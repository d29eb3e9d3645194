package handlers

import (
	"net/http"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
)

// Metrics serves the Prometheus registry; 404 when metrics are disabled.
func Metrics(d deps.Deps) http.Handler {
	return d.Metrics.Handler()
}
