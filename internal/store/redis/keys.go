package redis

import "github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"

const (
	// KeyCatalogSnapshot holds the last successfully loaded catalog as JSON.
	KeyCatalogSnapshot = "disrupt-asia:catalog:snapshot"
	// KeyCatalogSavedAt holds the unix time (seconds) of the snapshot.
	KeyCatalogSavedAt = "disrupt-asia:catalog:saved_at"
)

// FavoritesPattern matches every profile's favorites key.
func FavoritesPattern() string {
	return kv.KeyPrefix + ":*"
}
