package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiters keeps one token bucket per client IP.
type ipLimiters struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.ips[ip]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.ips[ip] = lim
	return lim
}

// RateLimit is a middleware for per-IP rate limiting.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	limiters := &ipLimiters{ips: make(map[string]*rate.Limiter), r: r, b: burst}
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
