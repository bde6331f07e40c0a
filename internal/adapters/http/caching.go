package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on successful GET responses
// that did not set one themselves.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || c.Response().StatusCode() >= 400 {
			return err
		}
		if existing := c.GetRespHeader(fiber.HeaderCacheControl); existing != "" {
			return err
		}

		if ttl := cacheControlFor(c.Path()); ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}
		return err
	}
}

func cacheControlFor(path string) string {
	switch {
	case path == "/v1/health" || path == "/v1/ready":
		return "no-store"
	case path == "/metrics" || path == "/ws":
		return "no-cache"
	case path == "/v1/reports/nearby":
		return "public, max-age=30" // new reports arrive continuously
	case strings.HasPrefix(path, "/v1/reports/"):
		return "public, max-age=600, immutable" // reports never change once stored
	case strings.HasPrefix(path, "/v1/families") || strings.HasPrefix(path, "/v1/types"):
		return "public, max-age=3600"
	case strings.HasPrefix(path, "/docs"):
		return "public, max-age=3600"
	case strings.HasPrefix(path, "/v1/"):
		return "public, max-age=60"
	}
	return ""
}
