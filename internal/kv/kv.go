// Package kv defines the durable string key/value storage the favorites
// store writes through to.
package kv

import "context"

// Storage is a string key/value store.
//
// Get reports found=false with a nil error for an absent key; that is the
// normal first-run state and not a failure.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Name() string
}

// ProfileCounter is implemented by backends that can count the profiles
// holding a favorites payload.
type ProfileCounter interface {
	CountFavorites(ctx context.Context) (int, error)
}

// KeyPrefix is the namespace of favorites payloads. The suffix is the
// profile ID.
const KeyPrefix = "disrupt-asia-favorites"

// FavoritesKey returns the storage key of a profile's favorites.
func FavoritesKey(profileID string) string {
	return KeyPrefix + ":" + profileID
}
