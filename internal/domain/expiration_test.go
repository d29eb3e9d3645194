package domain

import (
	"testing"
	"time"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 9, 18, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		want    bool
	}{
		{name: "just created", created: now, want: false},
		{name: "29 days old", created: now.Add(-29 * Day), want: false},
		{name: "exactly at boundary", created: now.Add(-ExpirationWindow), want: false},
		{name: "one millisecond past boundary", created: now.Add(-ExpirationWindow - time.Millisecond), want: true},
		{name: "31 days old", created: now.Add(-31 * Day), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(tt.created.UnixMilli(), now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 9, 18, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		want    int
	}{
		{name: "created now", created: now, want: 30},
		{name: "one hour old rounds up", created: now.Add(-time.Hour), want: 30},
		{name: "29 days 1 hour old", created: now.Add(-29*Day - time.Hour), want: 1},
		{name: "exactly 30 days old", created: now.Add(-30 * Day), want: 0},
		{name: "35 days old never negative", created: now.Add(-35 * Day), want: 0},
		{name: "created in the future", created: now.Add(Day), want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.created.UnixMilli(), now); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

// A record can display 1 day left while IsExpired is still false, and 0
// days at the exact boundary while still active.
func TestDaysRemainingAndIsExpiredRoundingGap(t *testing.T) {
	now := time.Date(2025, 9, 18, 10, 0, 0, 0, time.UTC)
	boundary := now.Add(-ExpirationWindow).UnixMilli()

	if DaysRemaining(boundary, now) != 0 {
		t.Errorf("DaysRemaining at boundary = %d, want 0", DaysRemaining(boundary, now))
	}
	if IsExpired(boundary, now) {
		t.Error("record at exact boundary must not be expired")
	}
}

func TestFilterExpired(t *testing.T) {
	now := time.Date(2025, 9, 18, 10, 0, 0, 0, time.UTC)
	records := []FavoriteRecord{
		{Startup: Startup{ID: 1}, Timestamp: now.Add(-31 * Day).UnixMilli()},
		{Startup: Startup{ID: 2}, Timestamp: now.Add(-29 * Day).UnixMilli()},
		{Startup: Startup{ID: 3}, Timestamp: now.UnixMilli()},
	}

	kept, dropped := FilterExpired(records, now)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(kept) != 2 || kept[0].ID != 2 || kept[1].ID != 3 {
		t.Errorf("kept = %+v, want IDs [2 3] in order", kept)
	}
	if len(records) != 3 {
		t.Error("FilterExpired must not modify its input")
	}
}

func TestNewFavoriteRecord(t *testing.T) {
	now := time.Date(2025, 9, 7, 15, 4, 5, 0, time.UTC)
	s := Startup{ID: 7, StartupName: "Acme", StartupDomain: "FinTech"}

	rec := NewFavoriteRecord(s, now)

	if rec.ID != 7 || rec.StartupName != "Acme" {
		t.Errorf("snapshot lost startup fields: %+v", rec)
	}
	if rec.Timestamp != now.UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", rec.Timestamp, now.UnixMilli())
	}
	if rec.AddedDate != "9/7/2025" {
		t.Errorf("AddedDate = %q, want 9/7/2025", rec.AddedDate)
	}
	if !rec.CreatedAt().Equal(now) {
		t.Errorf("CreatedAt() = %v, want %v", rec.CreatedAt(), now)
	}
}
