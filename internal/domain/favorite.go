package domain

import "time"

// AddedDateLayout renders FavoriteRecord.AddedDate the way the portal
// always displayed it (month/day/year, no padding).
const AddedDateLayout = "1/2/2006"

// FavoriteRecord is a snapshot of a startup taken when it was favorited.
//
// The embedded Startup is copied, not referenced: later catalog reloads
// do not rewrite saved favorites. Timestamp is fixed at creation and is
// the only input to expiration.
type FavoriteRecord struct {
	Startup

	// AddedDate is display only.
	AddedDate string `json:"addedDate"`

	// Timestamp is milliseconds since the Unix epoch at creation.
	Timestamp int64 `json:"timestamp"`
}

// NewFavoriteRecord snapshots s at now.
func NewFavoriteRecord(s Startup, now time.Time) FavoriteRecord {
	return FavoriteRecord{
		Startup:   s,
		AddedDate: now.Format(AddedDateLayout),
		Timestamp: now.UnixMilli(),
	}
}

// CreatedAt returns Timestamp as a time.Time.
func (f FavoriteRecord) CreatedAt() time.Time {
	return time.UnixMilli(f.Timestamp)
}
