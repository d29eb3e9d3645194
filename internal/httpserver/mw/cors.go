package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the portal front-end to call the API from origins. The
// profile travels in a cookie or the X-Profile-ID header, so both are
// allowed.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", ProfileHeader, "X-Request-ID"},
		ExposedHeaders:   []string{ProfileHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
