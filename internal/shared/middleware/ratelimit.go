package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimiter is a sliding-window limiter backed by Redis sorted sets.
type RateLimiter struct {
	redis redis.UniversalClient
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redis: client}
}

var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local expiry = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current = redis.call('ZCARD', key)
	if current >= limit then
		return {0, 0}
	end

	redis.call('ZADD', key, now, now)
	redis.call('PEXPIRE', key, expiry)

	return {1, limit - current - 1}
`)

// Allow reports whether one more request under key fits within limit per window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	now := time.Now().UnixNano()
	windowStart := now - window.Nanoseconds()

	result, err := slidingWindowScript.Run(ctx, r.redis, []string{"ratelimit:" + key},
		windowStart,
		now,
		limit,
		window.Milliseconds()+60000,
	).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check: %w", err)
	}

	allowed, _ := strconv.ParseInt(fmt.Sprint(result[0]), 10, 64)
	remaining, _ := strconv.ParseInt(fmt.Sprint(result[1]), 10, 64)

	return allowed == 1, int(remaining), nil
}

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Limit is the maximum number of requests per window.
	Limit int
	// Window is the time window.
	Window time.Duration
	// KeyPrefix namespaces the counter, so different routes get separate budgets.
	KeyPrefix string
	// KeyFunc generates the rate limit key from the request. Default uses client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a middleware that limits requests using the given limiter.
// A nil limiter disables limiting, which keeps the service usable without Redis.
func RateLimit(limiter *RateLimiter, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string {
			return c.ClientIP()
		}
	}

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + ":" + cfg.KeyFunc(c)
		allowed, remaining, err := limiter.Allow(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			// On limiter errors requests pass through; the limiter is
			// protection, not a dependency.
			c.Next()
			return
		}

		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			c.Header(RetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
