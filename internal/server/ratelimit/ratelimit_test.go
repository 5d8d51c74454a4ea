package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_DrainAndDeny(t *testing.T) {
	b := newBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		ok, _, _ := b.take()
		assert.True(t, ok, "request %d should spend a token", i+1)
	}

	ok, remaining, reset := b.take()
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(time.Now()), "reset must lie in the future while draining")
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(2, 10.0) // refills a token every 100ms

	b.take()
	b.take()
	ok, _, _ := b.take()
	require.False(t, ok)

	time.Sleep(150 * time.Millisecond)

	ok, _, _ = b.take()
	assert.True(t, ok, "one token should have refilled")
	ok, _, _ = b.take()
	assert.False(t, ok)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EndpointTier(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/pdf", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/pdf", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/api/pdf", "POST")
	assert.False(t, allowed, "tier budget exhausted")

	// Other endpoints keep their own default-limit bucket.
	allowed, info := limiter.Allow("127.0.0.1", "/other", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/test", "GET")
	require.False(t, allowed)

	// A different client still has a full bucket.
	allowed, _ = limiter.Allow("127.0.0.2", "/test", "GET")
	assert.True(t, allowed)
}

func TestLimiter_BurstBelowLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
		require.True(t, allowed, "burst request %d", i+1)
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
	assert.False(t, allowed, "burst capacity caps instantaneous requests below the window limit")
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, admitted)
}

func TestLimiter_ReapIdle(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 4; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	require.Len(t, limiter.buckets, 4)

	// A cutoff in the past keeps every freshly touched bucket.
	limiter.reapIdle(time.Now().Add(-time.Minute))
	assert.Len(t, limiter.buckets, 4)

	// A cutoff ahead of now drops them all.
	limiter.reapIdle(time.Now().Add(time.Minute))
	assert.Empty(t, limiter.buckets)
}

func TestMatchEndpoint_DefaultTiers(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path      string
		method    string
		wantLimit int
	}{
		{"/api/pdf", "POST", 20},
		{"/api/assessment", "POST", 60},
		{"/api/waitlist", "POST", 30},
		{"/api/admin/login", "POST", 10},
	}
	for _, tt := range tests {
		tier := MatchEndpoint(tt.path, tt.method, configs)
		require.NotNil(t, tier, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.wantLimit, tier.Limit, "%s %s", tt.method, tt.path)
	}

	// Reads fall through to the global default.
	assert.Nil(t, MatchEndpoint("/api/waitlist/stats", "GET", configs))

	// The health probe is exempt.
	tier := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, tier)
	assert.Zero(t, tier.Limit)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}
