package deps

import (
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/catalog"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/favorites"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/itinerary"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time     // for testing, defaults to time.Now
	AllowedHosts   []string             // Host headers allowed to reach admin endpoints
	AllowedCIDRS   []string             // IPs allowed to reach readyz/reload/metrics
	TrustProxy     bool                 // true if running behind a trusted reverse proxy
	CORSOrigins    []string             // browser origins allowed to call the API
	RequestTimeout time.Duration        // per-request timeout, 0 disables it
	Catalog        *catalog.Catalog     // startup catalog
	Favorites      *favorites.Manager   // per-profile favorites stores
	Itinerary      *itinerary.Directory // investor itineraries (empty when disabled)
	Metrics        *metrics.Metrics     // nil when metrics are disabled
	ReloadTrigger  chan struct{}        // manual catalog reload
	RateLimit      RateLimit            // favorites mutations
}

// RateLimit sizes the per-client token bucket of favorites mutations.
type RateLimit struct {
	Burst     int
	PerMinute int
}
