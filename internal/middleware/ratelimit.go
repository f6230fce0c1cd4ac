// Package middleware holds reusable Echo middleware for the API.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/aoimura/meeting-room-reservation/internal/config"
)

// RateLimit returns a fixed-window request limiter keyed by client IP
// and backed by Redis. When the limiter is disabled or no Redis
// client is available it degrades to a pass-through, so the API keeps
// serving without Redis at the cost of no limiting.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil || cfg.Window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			// Window arithmetic runs in nanoseconds; sub-second
			// windows are valid.
			window := time.Now().UnixNano() / int64(cfg.Window)
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.RealIP(), window)

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis failures must not take the API down.
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Limit) {
				retry := cfg.Window - time.Duration(time.Now().UnixNano()%int64(cfg.Window))
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retry/time.Second)+1))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
