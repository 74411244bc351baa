package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lumapark/venue-booking/internal/config"
)

// NewRateLimiter limits requests per client IP using a fixed window
// counter in Redis (INCR plus EXPIRE on first hit).  When the limiter
// is disabled or Redis is unavailable requests pass through, and any
// Redis error fails open so the API stays reachable.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 120
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			bucket := time.Now().Unix() / int64(window/time.Second)
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.RealIP(), bucket)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c) // fail open
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}
			if count > int64(limit) {
				retry := int(window / time.Second)
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retry))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
