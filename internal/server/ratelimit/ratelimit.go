// Package ratelimit throttles API clients with per-endpoint token buckets.
// Every client and endpoint pair gets its own bucket; tiers for the
// expensive endpoints live in config.go.
package ratelimit

import (
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket survives before the
// reaper drops it.
const bucketIdleTTL = time.Hour

// bucket is a token bucket. Tokens refill continuously at rate per second
// up to capacity, and each admitted request spends one token.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	refilled time.Time
	touched  time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		refilled: now,
		touched:  now,
	}
}

// take refills the bucket for the elapsed time, then spends a token when one
// is available. It reports whether the request is admitted, the whole tokens
// left afterwards, and when the bucket will be full again.
func (b *bucket) take() (ok bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.refilled).Seconds()*b.rate)
	b.refilled = now
	b.touched = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	remaining = int(b.tokens)
	reset = now
	if b.tokens < b.capacity {
		reset = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	}
	return ok, remaining, reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.touched.Before(cutoff)
}

// Info describes the rate limit decision for one request. Limit is zero for
// unthrottled requests (disabled limiter, whitelisted client, unlimited
// endpoint).
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings. Endpoints without an entry in
// EndpointConfigs share the default limit and window.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter admits or rejects requests per client and endpoint.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	reaper  *time.Ticker
	done    chan struct{}
}

// NewLimiter builds a limiter and, when a cleanup interval is configured,
// starts a background reaper for idle buckets.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.reaper = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.reapLoop()
	}

	return l
}

// Allow decides whether a request from clientID may hit the endpoint.
func (l *Limiter) Allow(clientID string, path string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	tier := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if tier == nil {
		tier = &EndpointConfig{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if tier.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+" "+method+" "+path, tier)
	ok, remaining, reset := b.take()

	info := Info{
		Allowed:   ok,
		Limit:     tier.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !ok {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return ok, info
}

// bucketFor returns the bucket for the key, creating it from the tier's
// limit and burst on first sight.
func (l *Limiter) bucketFor(key string, tier *EndpointConfig) *bucket {
	l.mu.RLock()
	b := l.buckets[key]
	l.mu.RUnlock()
	if b != nil {
		return b
	}

	capacity := tier.Burst
	if capacity <= 0 {
		capacity = tier.Limit
	}
	fresh := newBucket(capacity, float64(tier.Limit)/tier.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if b := l.buckets[key]; b != nil {
		return b
	}
	l.buckets[key] = fresh
	return fresh
}

func (l *Limiter) reapLoop() {
	for {
		select {
		case <-l.reaper.C:
			l.reapIdle(time.Now().Add(-bucketIdleTTL))
		case <-l.done:
			return
		}
	}
}

// reapIdle drops every bucket untouched since the cutoff so quiet clients do
// not accumulate state forever.
func (l *Limiter) reapIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop shuts down the reaper goroutine.
func (l *Limiter) Stop() {
	if l.reaper != nil {
		l.reaper.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
