package domain

import "time"

const (
	// ExpirationDays is the lifetime of a favorite, also shown to users
	// ("Expires in 30 days").
	ExpirationDays = 30

	// Day is the unit DaysRemaining rounds to.
	Day = 24 * time.Hour

	// ExpirationWindow is ExpirationDays as a duration.
	ExpirationWindow = ExpirationDays * Day
)

// IsExpired reports whether timestamp + window lies strictly before now,
// at millisecond precision. A record is still active at the exact
// boundary instant.
func IsExpired(timestampMs int64, now time.Time) bool {
	return now.UnixMilli() > timestampMs+ExpirationWindow.Milliseconds()
}

// FilterExpired returns the records still active at now, preserving
// order, and the number dropped. The input slice is not modified.
func FilterExpired(records []FavoriteRecord, now time.Time) ([]FavoriteRecord, int) {
	kept := make([]FavoriteRecord, 0, len(records))
	for _, r := range records {
		if IsExpired(r.Timestamp, now) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

// DaysRemaining is ceil((timestamp + window - now) / 1 day), never
// negative.
//
// It is a display value only and rounds up, so it can read 1 for a record
// that expires within the hour. Eviction must use IsExpired.
func DaysRemaining(timestampMs int64, now time.Time) int {
	remainingMs := timestampMs + ExpirationWindow.Milliseconds() - now.UnixMilli()
	if remainingMs <= 0 {
		return 0
	}
	dayMs := Day.Milliseconds()
	return int((remainingMs + dayMs - 1) / dayMs)
}
