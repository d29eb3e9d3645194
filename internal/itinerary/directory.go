// Package itinerary serves the travel itineraries of invited investors.
package itinerary

import (
	"fmt"
	"sync"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
)

// Directory is an in-memory lookup of itineraries by investor ID.
type Directory struct {
	mu        sync.RWMutex
	investors map[string]domain.Investor
}

func NewDirectory() *Directory {
	return &Directory{investors: make(map[string]domain.Investor)}
}

// Replace swaps the whole set.
func (d *Directory) Replace(investors []domain.Investor) {
	m := make(map[string]domain.Investor, len(investors))
	for _, inv := range investors {
		m[inv.ID] = inv
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.investors = m
}

// Get returns the itinerary of id or ErrInvestorNotFound.
func (d *Directory) Get(id string) (domain.Investor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	inv, ok := d.investors[id]
	if !ok {
		return domain.Investor{}, fmt.Errorf("investor %q: %w", id, domain.ErrInvestorNotFound)
	}
	return inv, nil
}

// Count returns the number of itineraries.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.investors)
}
