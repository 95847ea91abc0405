// file: internal/server/middleware/ratelimit.go
// version: 1.1.0
// guid: 1331705a-85cb-4158-92f5-5ce203d8a0e7

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a lightweight per-IP token bucket limiter.
type IPRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     float64
	burst   int
	idleTTL time.Duration
}

// NewIPRateLimiter builds a limiter allowing rps requests per second
// with the given burst, per client IP.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rps,
		burst:   burst,
		idleTTL: 15 * time.Minute,
	}
}

func (r *IPRateLimiter) limiterForIP(ip string) *rate.Limiter {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.entries, key)
		}
	}

	entry, ok := r.entries[ip]
	if !ok {
		entry = &limiterEntry{
			limiter:  rate.NewLimiter(rate.Limit(r.rps), r.burst),
			lastSeen: now,
		}
		r.entries[ip] = entry
		return entry.limiter
	}

	entry.lastSeen = now
	return entry.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (r *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !r.limiterForIP(ip).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
