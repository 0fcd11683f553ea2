// Package ratelimit provides per-client rate limiting using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket holds up to capacity tokens, refilled continuously at refillRate per second.
// Callers hold the Limiter's lock.
type tokenBucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

func (tb *tokenBucket) refill(now time.Time) {
	if elapsed := now.Sub(tb.lastRefill); elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed.Seconds()*tb.refillRate)
		tb.lastRefill = now
	}
}

// take consumes a token if one is available.
func (tb *tokenBucket) take(now time.Time) bool {
	tb.refill(now)
	tb.lastAccess = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// fullAt returns when the bucket will be back at capacity.
func (tb *tokenBucket) fullAt(now time.Time) time.Time {
	missing := tb.capacity - tb.tokens
	if missing <= 0 || tb.refillRate <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
}

// nextTokenIn returns the wait until one token is available.
func (tb *tokenBucket) nextTokenIn() time.Duration {
	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}
	return time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages one token bucket per client and endpoint.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	return newLimiter(config, time.Now)
}

func newLimiter(config *Config, now func() time.Time) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    300,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  config,
		now:     now,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether a request from clientID to path may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ep := MatchEndpoint(path, method, l.config.EndpointConfigs)
	key := clientID + ":" + method + ":" + path
	if ep == nil {
		ep = &EndpointConfig{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	} else if ep.Path != "" {
		// Requests matching one pattern share a bucket
		key = clientID + ":" + method + ":" + ep.Path
	}
	if ep.Limit <= 0 || ep.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		burst := ep.Burst
		if burst <= 0 {
			burst = ep.Limit
		}
		bucket = newTokenBucket(burst, float64(ep.Limit)/ep.Window.Seconds(), now)
		l.buckets[key] = bucket
	}

	allowed := bucket.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     ep.Limit,
		Remaining: int(bucket.tokens),
		ResetTime: bucket.fullAt(now),
	}
	if !allowed {
		info.RetryAfter = bucket.nextTokenIn()
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets that have not been used within IdleTTL.
func (l *Limiter) evictIdle() int {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
			evicted++
		}
	}
	return evicted
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
