package handlers

import (
	"net/http"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

// Reload triggers a manual reload of the catalog and itineraries.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			_, err := w.Write([]byte("✅ Reload triggered successfully\n"))
			logWriteErr(d, err)
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			_, err := w.Write([]byte("⏳ Reload already in progress, please wait\n"))
			logWriteErr(d, err)
		}
	}
}
