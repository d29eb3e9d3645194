package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitConfig configures the per-client token bucket that guards
// favorites mutations.
type RateLimitConfig struct {
	Burst      int              // bucket capacity, at least 1
	PerMinute  int              // tokens refilled per minute, at least 1
	IdleTTL    time.Duration    // forget clients idle this long, 15m by default
	TrustProxy bool             // resolve the client from proxy headers
	Now        func() time.Time // defaults to time.Now
}

// tokenBucket holds the tokens left at the instant it was last refilled.
type tokenBucket struct {
	tokens  float64
	updated time.Time
}

// verdict is the outcome of one take.
type verdict struct {
	allowed    bool
	remaining  int
	retryAfter time.Duration
}

// clientLimiter keeps one bucket per client key under a single lock.
type clientLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	capacity  float64
	perSecond float64
	idleTTL   time.Duration
	nextSweep time.Time
}

func newClientLimiter(cfg RateLimitConfig, now time.Time) *clientLimiter {
	l := &clientLimiter{
		buckets:   make(map[string]*tokenBucket),
		capacity:  float64(max(cfg.Burst, 1)),
		perSecond: float64(max(cfg.PerMinute, 1)) / 60,
		idleTTL:   cfg.IdleTTL,
	}
	if l.idleTTL <= 0 {
		l.idleTTL = 15 * time.Minute
	}
	l.nextSweep = now.Add(l.idleTTL)
	return l
}

// take spends one token of client at now.
func (l *clientLimiter) take(client string, now time.Time) verdict {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) {
		l.forgetIdleLocked(now)
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, updated: now}
		l.buckets[client] = b
	}
	if elapsed := now.Sub(b.updated); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed.Seconds()*l.perSecond)
		b.updated = now
	}

	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) / l.perSecond * float64(time.Second))
		return verdict{retryAfter: wait}
	}
	b.tokens--
	return verdict{allowed: true, remaining: int(b.tokens)}
}

// forgetIdleLocked drops buckets untouched for idleTTL.
func (l *clientLimiter) forgetIdleLocked(now time.Time) {
	for client, b := range l.buckets {
		if now.Sub(b.updated) > l.idleTTL {
			delete(l.buckets, client)
		}
	}
	l.nextSweep = now.Add(l.idleTTL)
}

// RateLimit answers 429 with Retry-After, in whole seconds rounded up, to
// clients whose bucket is empty. Every response carries X-RateLimit-Limit
// and X-RateLimit-Remaining.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	l := newClientLimiter(cfg, now())
	limit := strconv.Itoa(int(l.capacity))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := l.take(ClientIP(r, cfg.TrustProxy), now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))

			if !v.allowed {
				secs := max(int(math.Ceil(v.retryAfter.Seconds())), 1)
				h.Set("Retry-After", strconv.Itoa(secs))
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}` + "\n"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
