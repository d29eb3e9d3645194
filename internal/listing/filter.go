// Package listing filters and paginates startup listings, for the catalog
// and for a profile's favorites alike.
package listing

import (
	"strings"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
)

// All disables a select filter.
const All = "all"

// Quick filter names.
const (
	QuickTop30   = "Top 30"
	QuickLocal   = "Local"
	QuickForeign = "Foreign"
)

// QuickFilters lists the quick filters in display order.
var QuickFilters = []string{QuickTop30, QuickLocal, QuickForeign}

// Designations offered by the role filter.
var Designations = []string{"CEO", "Founder", "CTO", "Co-Founder"}

// Filter selects startups. Zero values disable each criterion.
type Filter struct {
	Search      string   // case-insensitive substring of name or description, untrimmed
	Domain      string   // exact startupDomain, or All
	Designation string   // exact contact designation, or All
	Location    string   // the catalog has no location: anything but All matches nothing
	Quick       []string // any-of QuickFilters
}

// Match reports whether s passes every criterion.
func (f Filter) Match(s domain.Startup) bool {
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(s.StartupName), q) &&
			!strings.Contains(strings.ToLower(s.BriefDescription), q) {
			return false
		}
	}

	if !isAll(f.Domain) && s.StartupDomain != f.Domain {
		return false
	}

	if !isAll(f.Designation) && s.Designation != f.Designation {
		return false
	}

	if !isAll(f.Location) {
		return false
	}

	if len(f.Quick) > 0 && !matchAnyQuick(s, f.Quick) {
		return false
	}

	return true
}

func matchAnyQuick(s domain.Startup, quick []string) bool {
	for _, q := range quick {
		switch q {
		case QuickTop30:
			if s.IsTop30 {
				return true
			}
		case QuickLocal:
			if s.IsLocal {
				return true
			}
		case QuickForeign:
			if !s.IsLocal {
				return true
			}
		}
	}
	return false
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == All
}

// Apply returns the items whose startup matches f, in input order.
func Apply[T any](items []T, f Filter, startup func(T) domain.Startup) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(startup(it)) {
			out = append(out, it)
		}
	}
	return out
}

// Startups is Apply for catalog entries.
func Startups(items []domain.Startup, f Filter) []domain.Startup {
	return Apply(items, f, func(s domain.Startup) domain.Startup { return s })
}

// Favorites is Apply for favorite records.
func Favorites(items []domain.FavoriteRecord, f Filter) []domain.FavoriteRecord {
	return Apply(items, f, func(r domain.FavoriteRecord) domain.Startup { return r.Startup })
}
