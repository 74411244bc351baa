package middleware

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lumapark/venue-booking/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cache hit.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// cacheKey hashes method, route and query under the configured prefix
// so equivalent requests share an entry regardless of header noise.
func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.Method + "|" + c.Path() + "|" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

// bodyCapture buffers the response body while forwarding it to the
// client, up to the configured limit.
type bodyCapture struct {
	http.ResponseWriter
	status int
	body   []byte
	limit  int
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	if w.limit <= 0 || len(w.body) < w.limit {
		w.body = append(w.body, b...)
		if w.limit > 0 && len(w.body) > w.limit {
			w.body = w.body[:w.limit]
		}
	}
	return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful responses of the configured
// methods in Redis.  When caching is disabled or Redis is unavailable
// the middleware is a pass-through, so the API degrades gracefully.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			w := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = w
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if w.status == http.StatusOK {
				raw, err := json.Marshal(cachedResponse{
					Status:      w.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        w.body,
				})
				if err == nil {
					_ = rdb.SetEx(ctx, key, raw, ttl).Err()
				}
			}
			return nil
		}
	}
}
