package catalog

import (
	"sync"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
)

// Catalog is the in-memory, read-mostly list of startups.
// Order is the order of the source file and is kept for listings.
type Catalog struct {
	mu         sync.RWMutex
	startups   []domain.Startup
	byID       map[int]int // ID -> position in startups
	lastReload time.Time
	source     string // where the current set came from (file, redis)
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byID: make(map[int]int),
	}
}

// Replace swaps the whole set. Later duplicates of an ID are ignored.
func (c *Catalog) Replace(startups []domain.Startup, source string) {
	list := make([]domain.Startup, 0, len(startups))
	byID := make(map[int]int, len(startups))
	for _, s := range startups {
		if _, dup := byID[s.ID]; dup {
			continue
		}
		byID[s.ID] = len(list)
		list = append(list, s)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.startups = list
	c.byID = byID
	c.lastReload = time.Now()
	c.source = source
}

// Get returns a copy of the startup with the given ID.
func (c *Catalog) Get(id int) (domain.Startup, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.byID[id]
	if !ok {
		return domain.Startup{}, false
	}
	return c.startups[pos], true
}

// All returns a snapshot of every startup in catalog order.
func (c *Catalog) All() []domain.Startup {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Startup, len(c.startups))
	copy(out, c.startups)
	return out
}

// Domains returns the distinct startup domains in first-seen order.
func (c *Catalog) Domains() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var domains []string
	for _, s := range c.startups {
		if s.StartupDomain == "" || seen[s.StartupDomain] {
			continue
		}
		seen[s.StartupDomain] = true
		domains = append(domains, s.StartupDomain)
	}
	return domains
}

// Count returns the number of startups.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.startups)
}

// LastReload returns when Replace last ran, zero if never.
func (c *Catalog) LastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}

// Source names where the current set was loaded from.
func (c *Catalog) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.source
}
