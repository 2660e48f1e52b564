package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthzHandler is a minimal liveness probe.
func HealthzHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("ok")
	}
}

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": "dev",
		})
	}
}

// ReadyHandler checks that the upstream OSM endpoints are configured. The
// service holds no connections of its own, so readiness is configuration
// readiness; the upstreams are only contacted per request.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checks := make(map[string]string)
		allOK := true

		if deps.Locator == nil {
			checks["locator"] = "not configured"
			allOK = false
		} else {
			checks["locator"] = "ok"
		}

		if deps.NominatimEndpoint == "" {
			checks["nominatim"] = "not configured"
			allOK = false
		} else {
			checks["nominatim"] = "ok"
		}

		if deps.OverpassEndpoint == "" {
			checks["overpass"] = "not configured"
			allOK = false
		} else {
			checks["overpass"] = "ok"
		}

		status := "ready"
		code := 200
		if !allOK {
			status = "not ready"
			code = 503
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
