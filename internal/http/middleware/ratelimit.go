// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter with one
// bucket per caller and opportunistic eviction of idle buckets. It is
// process-local: in a horizontally scaled deployment each instance enforces
// its own budget, which is acceptable for edge-level abuse control of the
// feed endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc maps a request to the identity whose bucket it consumes from.
type keyFunc func(*gin.Context) string

// KeyByDomainOrIP keys requests by the serving domain named in the legacy
// "d" parameter, so one misbehaving consumer site cannot starve the others
// behind a shared egress IP. Requests without the parameter fall back to the
// client IP. Prefixes keep the two namespaces from colliding.
func KeyByDomainOrIP() keyFunc {
	return func(c *gin.Context) string {
		if d := c.Query("d"); d != "" {
			return "domain:" + d
		}
		return "ip:" + c.ClientIP()
	}
}

// bucket pairs a limiter with its last activity for idle eviction.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out tokens from per-key buckets created on demand.
// Idle buckets are swept during lookups once enough requests have passed,
// which bounds the map without a background goroutine. Safe for concurrent
// use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups uint64

	ttl time.Duration
}

// sweepEvery is the lookup count between idle-bucket sweeps.
const sweepEvery = 5000

// NewRateLimiter builds a limiter replenishing rps tokens per second with
// the given burst capacity (coerced to at least 1), keyed by keyFn.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
		ttl:     10 * time.Minute,
	}
}

// bucketFor returns the limiter for key, creating it when absent. Every
// sweepEvery lookups the idle buckets are evicted first, so even the bucket
// being fetched can expire and start fresh.
func (rl *RateLimiter) bucketFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	rl.lookups++
	if rl.lookups >= sweepEvery {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		lim := b.limiter
		rl.mu.Unlock()
		return lim
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.buckets[key] = &bucket{limiter: lim, lastSeen: now}
	rl.mu.Unlock()
	return lim
}

// ctxKeyRateBypass flags a request as exempt from limiting.
const ctxKeyRateBypass = "rateBypass"

// MarkRateBypass exempts the current request from rate limiting. Health
// probes and other internal checks should never burn tokens.
func MarkRateBypass(c *gin.Context) {
	c.Set(ctxKeyRateBypass, true)
}

// IsRateBypass reports whether MarkRateBypass flagged this request.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler enforces the per-key budget. Exhausted callers get a 429 with the
// standard JSON envelope and a Retry-After hint; bypass-flagged requests
// pass straight through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		if rl.bucketFor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "rate_limited",
			"message":    "rate limit exceeded",
		})
	}
}
