package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/catalog"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/itinerary"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/sources/eventdata"
)

// CatalogSaver receives every successfully loaded catalog.
type CatalogSaver interface {
	SaveCatalog(ctx context.Context, startups []domain.Startup) error
}

// EventFiles are the data files the reloader reads. Itinerary is optional.
type EventFiles struct {
	Catalog   string
	Itinerary string
}

// CatalogReloader keeps the catalog (and itineraries) in sync with the
// event data files: at start, on an interval and on demand.
type CatalogReloader struct {
	files         EventFiles
	catalog       *catalog.Catalog
	directory     *itinerary.Directory
	saver         CatalogSaver // nil when no snapshot cache is configured
	logger        logger.Logger
	metrics       *metrics.Metrics
	interval      time.Duration
	manualTrigger <-chan struct{}

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewCatalogReloader creates a reloader. manualTrigger may be shared with
// the HTTP reload endpoint and the file watcher.
func NewCatalogReloader(
	files EventFiles,
	cat *catalog.Catalog,
	dir *itinerary.Directory,
	saver CatalogSaver,
	log logger.Logger,
	m *metrics.Metrics,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		files:         files,
		catalog:       cat,
		directory:     dir,
		saver:         saver,
		logger:        log,
		metrics:       m,
		interval:      interval,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start loads the files once and then reloads in the background.
//
// A failed first load is fatal only when the catalog is still empty; a
// catalog seeded from the snapshot cache keeps serving.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		if cr.catalog.Count() == 0 {
			return fmt.Errorf("initial catalog load failed: %w", err)
		}
		cr.logger.Warn("initial catalog load failed, serving cached catalog",
			logger.Int("count", cr.catalog.Count()),
			logger.Error(err))
	}

	cr.started = true
	go cr.run(ctx)
	return nil
}

func (cr *CatalogReloader) run(ctx context.Context) {
	defer close(cr.doneCh)

	ticker := time.NewTicker(cr.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cr.reloadAndLog(ctx)
		case <-cr.manualTrigger:
			cr.logger.Info("manual catalog reload triggered")
			cr.reloadAndLog(ctx)
		case <-cr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (cr *CatalogReloader) reloadAndLog(ctx context.Context) {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Error("failed to reload catalog", logger.Error(err))
	}
}

// Stop ends the background loop and waits for it.
func (cr *CatalogReloader) Stop() {
	cr.stopOnce.Do(func() {
		close(cr.stopCh)
		if cr.started {
			<-cr.doneCh
		}
	})
}

// Reload reads the catalog file and swaps the in-memory catalog. The
// previous catalog is kept when the file is unreadable or invalid.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	startups, err := eventdata.ReadStartups(cr.files.Catalog)
	if err != nil {
		cr.metrics.CatalogReloadFailed()
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	cr.catalog.Replace(startups, "file")
	cr.metrics.CatalogLoaded(len(startups))
	cr.logger.Info("catalog loaded",
		logger.String("file", cr.files.Catalog),
		logger.Int("count", len(startups)))

	if cr.saver != nil {
		if err := cr.saver.SaveCatalog(ctx, startups); err != nil {
			cr.logger.Warn("failed to save catalog snapshot", logger.Error(err))
		}
	}

	cr.reloadItinerary()
	return nil
}

// reloadItinerary is best effort: itineraries never block the catalog.
func (cr *CatalogReloader) reloadItinerary() {
	if cr.files.Itinerary == "" || cr.directory == nil {
		return
	}

	investors, err := eventdata.ReadInvestors(cr.files.Itinerary)
	if err != nil {
		cr.logger.Warn("failed to load itineraries, keeping previous set",
			logger.String("file", cr.files.Itinerary),
			logger.Error(err))
		return
	}

	cr.directory.Replace(investors)
	cr.logger.Info("itineraries loaded", logger.Int("count", len(investors)))
}
