package middleware

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired rate limit windows are pruned.
const DefaultCleanupInterval = 5 * time.Minute

// RateLimiter is a fixed-window request counter keyed by client address.
// It is safe for concurrent use.
type RateLimiter struct {
	limit  int
	window time.Duration
	hits   *cache.Cache
}

// NewRateLimiter allows limit requests per key in each window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		hits:   cache.New(window, DefaultCleanupInterval),
	}
}

// Allow records a request for key. When the key is over its limit it
// returns false and the time left until the window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	for {
		// Add only succeeds when no live window exists for key.
		if err := l.hits.Add(key, 1, l.window); err == nil {
			return true, 0
		}
		// IncrementInt keeps the expiry set by Add, so the window stays fixed.
		n, err := l.hits.IncrementInt(key, 1)
		if err != nil {
			// window expired between Add and IncrementInt
			continue
		}
		if n <= l.limit {
			return true, 0
		}
		_, resetAt, found := l.hits.GetWithExpiration(key)
		if !found {
			continue
		}
		return false, time.Until(resetAt)
	}
}

// Len returns the number of tracked keys, including expired windows the
// janitor has not pruned yet.
func (l *RateLimiter) Len() int {
	return l.hits.ItemCount()
}

// RateLimit returns middleware that rejects requests over the limiter's
// budget with 429 and a Retry-After header.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)
		allowed, retryAfter := limiter.Allow(key)
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			log.Printf("middleware.RateLimit: %s %s throttled for %s", c.Request.Method, c.Request.URL.Path, key)
			c.Header("Retry-After", strconv.Itoa(secs))
			abortJSON(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many attempts, please try again later")
			return
		}
		c.Next()
	}
}

// ClientKey identifies the caller for rate limiting. Forwarding headers
// are only honoured when the socket peer is one of the engine's trusted
// proxies.
func ClientKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
