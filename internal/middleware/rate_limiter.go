package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP. Idle buckets expire.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *gocache.Cache
	every    rate.Limit
	burst    int
}

func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &IPRateLimiter{
		limiters: gocache.New(10*time.Minute, 10*time.Minute),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if x, found := l.limiters.Get(ip); found {
		lim := x.(*rate.Limiter)
		l.limiters.SetDefault(ip, lim)
		return lim
	}
	lim := rate.NewLimiter(l.every, l.burst)
	l.limiters.SetDefault(ip, lim)
	return lim
}

// Allow spends one token for ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).Allow()
}

// Limit aborts with 429 once an IP runs out of tokens. onLimit renders the
// response; when nil a bare status is sent.
func (l *IPRateLimiter) Limit(onLimit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if onLimit != nil {
			onLimit(c)
		} else {
			c.Status(http.StatusTooManyRequests)
		}
		c.Abort()
	}
}
