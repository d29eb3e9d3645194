package routes

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
)

func routeTable(t *testing.T, d deps.Deps) map[string]bool {
	t.Helper()
	r := chi.NewRouter()
	RegisterAll(r, d)

	table := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		table[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)
	return table
}

func TestRegisterAll(t *testing.T) {
	table := routeTable(t, deps.Deps{Logger: logger.NewNop(), Metrics: metrics.New()})

	for _, want := range []string{
		"GET /healthz",
		"GET /readyz",
		"GET /infra",
		"POST /reload",
		"GET /metrics",
		"GET /api/startups",
		"GET /api/startups/{id}",
		"GET /api/favorites/count",
		"PUT /api/favorites/{id}",
		"DELETE /api/favorites/{id}",
		"DELETE /api/session",
		"GET /api/itinerary/{id}",
	} {
		assert.True(t, table[want], "missing route %s", want)
	}
}

func TestMetricsRouteNeedsMetrics(t *testing.T) {
	table := routeTable(t, deps.Deps{Logger: logger.NewNop()})
	assert.False(t, table["GET /metrics"])
}

func TestNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names() {
		assert.False(t, seen[n], "group %q registered twice", n)
		seen[n] = true
	}
	assert.Contains(t, Names(), "favorites")
}
