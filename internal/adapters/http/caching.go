package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/healthz" || path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case strings.HasPrefix(path, "/v1/trees"):
			// OSM data changes slowly; searches hit two upstreams and
			// are worth keeping around for a while.
			ttl = "public, max-age=600"

		case strings.HasPrefix(path, "/api"):
			ttl = "public, max-age=600" // deprecated aliases, same data

		case strings.HasPrefix(path, "/docs"):
			ttl = "public, max-age=3600" // Docs are static

		case path == "/":
			ttl = "public, max-age=3600" // Landing page is static
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
