package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client-IP token bucket. Used on the contact
// endpoint to keep the form from being used as a spam relay.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	l := &ipLimiter{
		limit:   r,
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "too many requests, try again later",
			})
			return
		}
		c.Next()
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientLimiter
	sweep   time.Time
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// drop idle entries so the map does not grow without bound
	if now.Sub(l.sweep) > 10*time.Minute {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > 10*time.Minute {
				delete(l.clients, k)
			}
		}
		l.sweep = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}
