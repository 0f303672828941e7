// Package ratelimit implements a per-session token bucket limiter for
// orchestration runs. Thread-safe. No background goroutines — buckets are
// refilled lazily on each Allow call.
package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a session has exhausted its run budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// Config configures the run limiter.
type Config struct {
	RunsPerMinute int // Runs allowed per minute. 0 = unlimited (Allow always succeeds).
	BurstSize     int // Maximum stored allowance. 0 = defaults to RunsPerMinute.
}

// Limiter is a per-session token bucket. Each session gets an independent
// bucket; one session cannot exhaust another's quota.
type Limiter struct {
	mu       sync.Mutex
	sessions map[string]*bucket
	rate     float64 // tokens per second
	burst    float64 // max bucket capacity
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewLimiter creates a limiter with the given configuration.
// If RunsPerMinute is 0, Allow always succeeds.
func NewLimiter(cfg Config) *Limiter {
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = cfg.RunsPerMinute
	}
	if burst <= 0 {
		burst = 1 // safety floor
	}
	return &Limiter{
		sessions: make(map[string]*bucket),
		rate:     float64(cfg.RunsPerMinute) / 60.0,
		burst:    float64(burst),
	}
}

// Allow checks whether the session may start another run.
// Consumes one token on success. Returns ErrRateLimited when exhausted.
func (l *Limiter) Allow(sessionID string) error {
	// Unlimited mode.
	if l.rate <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.sessions[sessionID]
	if !ok {
		// First run: start with a full bucket.
		b = &bucket{tokens: l.burst, lastFill: now}
		l.sessions[sessionID] = b
	}

	// Refill based on elapsed time.
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastFill = now

	if b.tokens < 1 {
		return ErrRateLimited
	}
	b.tokens--
	return nil
}
