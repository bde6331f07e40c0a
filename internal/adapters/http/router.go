package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/signuis/internal/pkg/metrics"
)

// requestTimeout bounds every REST handler under /v1.
const requestTimeout = 15 * time.Second

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())

	// Server span first so the request logger can pick up the trace ID
	app.Use(TracingMiddleware())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited",
				"too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	withTimeout := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, requestTimeout)
	}

	// Catalog
	v1.Get("/families", withTimeout(ListFamiliesHandler(deps)))
	v1.Post("/families", withTimeout(CreateFamilyHandler(deps)))
	v1.Get("/families/:id", withTimeout(GetFamilyHandler(deps)))
	v1.Get("/families/:id/types", withTimeout(FamilyTypesHandler(deps)))
	v1.Post("/types", withTimeout(CreateTypeHandler(deps)))
	v1.Get("/types/:id", withTimeout(GetTypeHandler(deps)))

	// Reports. /nearby must be registered before /:id.
	v1.Post("/reports", withTimeout(CreateReportHandler(deps)))
	v1.Get("/reports/nearby", withTimeout(NearbyReportsHandler(deps)))
	v1.Get("/reports/:id", withTimeout(GetReportHandler(deps)))
	v1.Get("/reports/:id/location", withTimeout(ReportLocationHandler(deps)))

	// Geometry codec
	v1.Post("/geometry/decode", withTimeout(DecodeGeometryHandler(deps)))
	v1.Post("/geometry/encode", withTimeout(EncodeGeometryHandler(deps)))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
