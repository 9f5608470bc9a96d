// Package ratelimit guards the unauthenticated endpoints with a per-client
// token bucket. Every client gets the same budget; there are no per-key
// overrides.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter is a token-bucket rate limiter keyed by client identifier
// (the client IP for HTTP use). Buckets start full and replenish
// continuously, reaching the full budget again one window after exhaustion.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	now     func() time.Time // injectable clock for testing
}

// New creates a Limiter that admits rate requests per window for each key.
func New(rate int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
}

// lockedBucket returns key's bucket, freshly refilled. Caller holds l.mu.
func (l *Limiter) lockedBucket(key string) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.rate), lastRefill: l.now()}
		l.buckets[key] = b
		return b
	}

	now := l.now()
	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens += elapsed * float64(l.rate) / l.window.Seconds()
		if b.tokens > float64(l.rate) {
			b.tokens = float64(l.rate)
		}
		b.lastRefill = now
	}
	return b
}

// Allow consumes one token for key and reports whether the request is
// admitted.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.lockedBucket(key)
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Status reports key's quota without consuming a token: the budget, the
// whole tokens remaining, and the time at which the bucket is full again.
func (l *Limiter) Status(key string) (limit int, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.lockedBucket(key)

	limit = l.rate
	remaining = int(b.tokens)
	if remaining < 0 {
		remaining = 0
	}

	deficit := float64(l.rate) - b.tokens
	if deficit <= 0 {
		resetAt = l.now()
	} else {
		perSecond := float64(l.rate) / l.window.Seconds()
		resetAt = l.now().Add(time.Duration(deficit / perSecond * float64(time.Second)))
	}
	return
}
