package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

// IdleReaper closes in-memory sessions that were not used for ttl.
type IdleReaper interface {
	ReapIdle(ttl time.Duration) int
	Count() int
}

// SessionReaper periodically tears down idle favorites stores.
//
// It only drops in-memory handles. Persisted favorites are untouched and
// expiration is still evaluated on the next load only.
type SessionReaper struct {
	sessions IdleReaper
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  bool
}

func NewSessionReaper(sessions IdleReaper, log logger.Logger, interval, ttl time.Duration) *SessionReaper {
	return &SessionReaper{
		sessions: sessions,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the reaper in the background.
func (sr *SessionReaper) Start(ctx context.Context) error {
	sr.started = true
	go sr.run(ctx)
	return nil
}

func (sr *SessionReaper) run(ctx context.Context) {
	defer close(sr.doneCh)

	ticker := time.NewTicker(sr.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sr.Collect()
		case <-sr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends the background loop and waits for it.
func (sr *SessionReaper) Stop() {
	sr.stopOnce.Do(func() {
		close(sr.stopCh)
		if sr.started {
			<-sr.doneCh
		}
	})
}

// Collect closes the idle sessions once and returns how many were closed.
func (sr *SessionReaper) Collect() int {
	reaped := sr.sessions.ReapIdle(sr.ttl)
	if reaped > 0 {
		sr.logger.Info("closed idle favorites sessions",
			logger.Int("closed", reaped),
			logger.Int("open", sr.sessions.Count()),
			logger.Duration("idle_ttl", sr.ttl))
	} else {
		sr.logger.Debug("no idle favorites sessions")
	}
	return reaped
}
