package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// IPRateLimiter applies a per-client-IP token bucket. Used on the auth
// endpoints to slow down credential stuffing.
type IPRateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	r        rate.Limit
	burst    int
	lastSeen time.Duration
}

func NewIPRateLimiter(perMinute float64, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		clients:  make(map[string]*clientLimiter),
		r:        rate.Limit(perMinute / 60.0),
		burst:    burst,
		lastSeen: 10 * time.Minute,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *IPRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-rl.lastSeen)
		for ip, cl := range rl.clients {
			if cl.lastAccess.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
