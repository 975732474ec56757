// Package ratelimit throttles the unauthenticated auth endpoints.
// Attempt counters live in Redis so the limit holds across instances.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"task_backend/internal/api"
)

// Limiter counts attempts per key within a fixed window.
// A nil Redis client disables limiting; the server stays usable without Redis.
type Limiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewLimiter creates a Limiter allowing max attempts per window under the
// given key prefix.
func NewLimiter(client *redis.Client, prefix string, max int64, window time.Duration) *Limiter {
	return &Limiter{client: client, prefix: prefix, max: max, window: window}
}

func (l *Limiter) key(id string) string {
	return fmt.Sprintf("%s:%s", l.prefix, id)
}

// Allow records one attempt for id and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, id string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	key := l.key(id)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First attempt in this window starts the clock.
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= l.max, nil
}

// Middleware applies the limiter per client IP. Limiter errors fail open:
// an unreachable Redis must not take authentication down with it.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.Fail("TOO_MANY_REQUESTS", "Too many attempts. Please try again later."))
			return
		}
		c.Next()
	}
}
