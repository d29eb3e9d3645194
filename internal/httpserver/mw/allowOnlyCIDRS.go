package mw

import (
	"net/http"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

// AllowOnlyCIDRS lets through only clients inside allowed. An empty list
// disables the check. trustProxy reads the client address from proxy
// headers (see ClientIP).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("client address rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
