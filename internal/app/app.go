package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/catalog"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/config"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/favorites"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/itinerary"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/metrics"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/scheduler"
	redisstore "github.com/DulithM/disrupt-asia-investor-platform-dev/internal/store/redis"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	backend  *Backend
	sessions *favorites.Manager
	reloader *scheduler.CatalogReloader
	watcher  *scheduler.CatalogWatcher // nil when watching is disabled
	reaper   *scheduler.SessionReaper
}

func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	ctx := context.Background()

	backend, err := OpenBackend(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	cat := catalog.New()
	dir := itinerary.NewDirectory()

	// With redis, the last good catalog is cached so the service can answer
	// before (or without) the catalog file.
	var saver scheduler.CatalogSaver
	if backend.Redis != nil {
		cache := redisstore.NewCatalogCache(backend.Redis)
		saver = cache
		if err := scheduler.NewCatalogSyncer(cache, cat, loggerClient).Sync(ctx); err != nil {
			loggerClient.Warn("failed to sync catalog from redis on startup, will load from file",
				logger.Error(err))
		}
	}

	// Create manual reload trigger channel, shared by /reload and the watcher
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		scheduler.EventFiles{Catalog: cfg.CatalogFile, Itinerary: cfg.ItineraryFile},
		cat,
		dir,
		saver,
		loggerClient,
		m,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	var watcher *scheduler.CatalogWatcher
	if cfg.WatchCatalog {
		paths := []string{cfg.CatalogFile}
		if cfg.ItineraryFile != "" {
			paths = append(paths, cfg.ItineraryFile)
		}
		watcher, err = scheduler.NewCatalogWatcher(paths, reloadTrigger, scheduler.DefaultWatchDebounce, loggerClient)
		if err != nil {
			loggerClient.Warn("catalog watcher disabled", logger.Error(err))
			watcher = nil
		}
	}

	sessions := favorites.NewManager(backend.Storage, cat, loggerClient, favorites.WithMetrics(m))
	reaper := scheduler.NewSessionReaper(sessions, loggerClient, cfg.SessionReapInterval, cfg.SessionIdleTTL)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Catalog:        cat,
		Favorites:      sessions,
		Itinerary:      dir,
		Metrics:        m,
		ReloadTrigger:  reloadTrigger,
		RateLimit: deps.RateLimit{
			Burst:     cfg.RateLimitBurst,
			PerMinute: cfg.RateLimitPerMinute,
		},
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		backend:  backend,
		sessions: sessions,
		reloader: reloader,
		watcher:  watcher,
		reaper:   reaper,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting portal v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("portal %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads the catalog and starts the periodic refresh
	if err := a.reloader.Start(ctx); err != nil {
		a.closeBackend()
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.logger.Warn("failed to start catalog watcher", logger.Error(err))
		}
	}

	if err := a.reaper.Start(ctx); err != nil {
		a.reloader.Stop()
		a.closeBackend()
		return fmt.Errorf("failed to start session reaper: %w", err)
	}
	a.logger.Info("session reaper started",
		logger.Duration("interval", a.cfg.SessionReapInterval),
		logger.Duration("idle_ttl", a.cfg.SessionIdleTTL))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		a.reloader.Stop()
		if a.watcher != nil {
			a.watcher.Stop()
		}
		a.reaper.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	a.sessions.Shutdown()
	a.closeBackend()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info("✅ portal stopped cleanly")
	return nil
}

func (a *App) closeBackend() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warnf("failed to close %s storage: %v", a.backend.Storage.Name(), err)
		return
	}
	a.logger.Info("✅ storage closed cleanly", logger.String("backend", a.backend.Storage.Name()))
}
