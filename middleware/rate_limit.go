package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/model"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
)

// RateLimiter counts requests per client in fixed windows that start at
// each client's first request.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	rate    int           // requests per window
	window  time.Duration // time window
	now     func() time.Time
}

type clientWindow struct {
	start time.Time
	count int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientWindow),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a request from key and reports whether it is within the
// limit. When it is not, the returned duration is the time until the
// client's window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictLocked(now)

	w, ok := l.clients[key]
	if !ok {
		w = &clientWindow{start: now}
		l.clients[key] = w
	}
	if w.count >= l.rate {
		return false, w.start.Add(l.window).Sub(now)
	}
	w.count++
	return true, 0
}

func (l *RateLimiter) evictLocked(now time.Time) {
	for key, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, key)
		}
	}
}

// RateLimit limits submissions per client IP using cfg.
func RateLimit(cfg *config.RateLimitConfig) gin.HandlerFunc {
	return RateLimitWith(NewRateLimiter(cfg.Requests, time.Duration(cfg.WindowSeconds)*time.Second))
}

// RateLimitWith limits requests per client IP using limiter.
func RateLimitWith(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter := limiter.Allow(clientIP)
		if !allowed {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", clientIP)

			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  model.StatusError,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
