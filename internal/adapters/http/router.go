package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/data-tales/tree-locator/internal/pkg/metrics"
)

// SetupRoutes registers all REST and GraphQL routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 60 requests per minute per IP. Every search fans out
	// to two public OSM services, so keep this well below their comfort.
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Legacy unversioned routes from the first release
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Path: "/api", SunsetDate: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), Alternative: "/v1/trees"},
		{Path: "/api/geojson", SunsetDate: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), Alternative: "/v1/trees/geojson"},
	}))

	// Landing page
	app.Get("/", IndexHandler())

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/healthz", HealthzHandler())
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — generous per-request timeout; a search chains a
	// geocode and up to two Overpass queries.
	v1 := app.Group("/v1")
	v1.Get("/trees", timeout.NewWithContext(TreeSearchHandler(deps), 30*time.Second))
	v1.Get("/trees/geojson", timeout.NewWithContext(TreeGeoJSONHandler(deps), 30*time.Second))

	// Deprecated aliases
	app.Get("/api", timeout.NewWithContext(TreeSearchHandler(deps), 30*time.Second))
	app.Get("/api/geojson", timeout.NewWithContext(TreeGeoJSONHandler(deps), 30*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)
}
