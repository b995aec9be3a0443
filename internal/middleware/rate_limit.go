// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/albanrr9/PharmacyOnline/internal/config"
)

// ipLimiter hands out one token bucket per client address. Buckets idle for
// more than a few minutes are dropped by a background sweep.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	refill  rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(refillEvery time.Duration, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		refill:  rate.Every(refillEvery),
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.refill, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimits carries the three per-IP budgets the API runs with: a general
// budget refilled every second, and stricter per-minute budgets for auth
// attempts and uploads. Burst sizes come from configuration.
type RateLimits struct {
	general *ipLimiter
	auth    *ipLimiter
	upload  *ipLimiter
}

func NewRateLimits(cfg config.RateLimitConfig) *RateLimits {
	return &RateLimits{
		general: newIPLimiter(time.Second, cfg.GeneralBurst),
		auth:    newIPLimiter(time.Minute, cfg.AuthBurst),
		upload:  newIPLimiter(time.Minute, cfg.UploadBurst),
	}
}

func (r *RateLimits) General() gin.HandlerFunc { return r.general.handler() }

func (r *RateLimits) Auth() gin.HandlerFunc { return r.auth.handler() }

func (r *RateLimits) Upload() gin.HandlerFunc { return r.upload.handler() }
