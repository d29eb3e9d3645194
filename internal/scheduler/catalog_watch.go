package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce collapses the burst of events an editor save emits.
const DefaultWatchDebounce = 500 * time.Millisecond

// CatalogWatcher turns changes of the event data files into reload
// triggers.
//
// It watches the parent directories rather than the files: editors and
// config management often replace a file by renaming over it, which drops
// a watch placed on the file itself.
type CatalogWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	trigger  chan<- struct{}
	debounce time.Duration
	logger   logger.Logger

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewCatalogWatcher watches paths and sends on trigger after a change
// settles. Sends never block: a pending trigger already covers the change.
func NewCatalogWatcher(paths []string, trigger chan<- struct{}, debounce time.Duration, log logger.Logger) (*CatalogWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	cw := &CatalogWatcher{
		watcher:  w,
		files:    make(map[string]bool),
		trigger:  trigger,
		debounce: debounce,
		logger:   log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		cw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return cw, nil
}

// Start runs the event loop in the background.
func (cw *CatalogWatcher) Start(ctx context.Context) error {
	cw.started = true
	go cw.run(ctx)

	cw.logger.Info("watching event data files", logger.Int("files", len(cw.files)))
	return nil
}

// Stop ends the event loop and releases the watcher.
func (cw *CatalogWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.stopCh)
		if cw.started {
			<-cw.doneCh
		}
		if err := cw.watcher.Close(); err != nil {
			cw.logger.Warn("failed to close file watcher", logger.Error(err))
		}
	})
}

func (cw *CatalogWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	// fires once the last relevant event is debounce old
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			cw.logger.Debug("event data file changed",
				logger.String("file", event.Name),
				logger.String("op", event.Op.String()))
			timer.Reset(cw.debounce)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("file watcher error", logger.Error(err))

		case <-timer.C:
			select {
			case cw.trigger <- struct{}{}:
			default:
			}
		}
	}
}

func (cw *CatalogWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return cw.files[abs]
}
