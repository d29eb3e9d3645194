package scheduler

import (
	"context"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/catalog"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

// CatalogSource returns a previously saved catalog.
type CatalogSource interface {
	GetCatalog(ctx context.Context) ([]domain.Startup, bool, error)
}

// CatalogSyncer seeds the in-memory catalog from the snapshot cache at
// startup, before the catalog file is read.
type CatalogSyncer struct {
	source  CatalogSource
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewCatalogSyncer(source CatalogSource, cat *catalog.Catalog, log logger.Logger) *CatalogSyncer {
	return &CatalogSyncer{
		source:  source,
		catalog: cat,
		logger:  log,
	}
}

// Sync copies the cached catalog into memory. A missing snapshot is not
// an error.
func (cs *CatalogSyncer) Sync(ctx context.Context) error {
	cs.logger.Info("syncing catalog from cache")

	startups, found, err := cs.source.GetCatalog(ctx)
	if err != nil {
		return err
	}
	if !found || len(startups) == 0 {
		cs.logger.Info("no cached catalog found")
		return nil
	}

	cs.catalog.Replace(startups, "cache")

	fields := []logger.Field{logger.Int("count", len(startups))}
	if dated, ok := cs.source.(interface {
		CatalogSavedAt(ctx context.Context) (time.Time, error)
	}); ok {
		if at, err := dated.CatalogSavedAt(ctx); err == nil && !at.IsZero() {
			fields = append(fields, logger.Time("saved_at", at))
		}
	}
	cs.logger.Info("synced catalog from cache", fields...)
	return nil
}
