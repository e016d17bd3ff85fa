package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/viraldaily/viraldaily-go/internal/handler"
	"github.com/viraldaily/viraldaily-go/internal/metrics"
	"github.com/viraldaily/viraldaily-go/internal/middleware"
	"github.com/viraldaily/viraldaily-go/internal/model"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video     *handler.VideoHandler
	Plans     *handler.PlansHandler
	Analytics *handler.AnalyticsHandler
	Health    *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, resolveTier func(string) model.Tier, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(middleware.NewTierResolver(resolveTier))

	// Health checks and metrics (before API group, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", metrics.Handler())

	// API routes
	api := app.Group("/api")

	api.Get("/videos", h.Video.GetVideos, middleware.NewVideosRateLimiter().Handler())
	api.Get("/subscription/plans", h.Plans.GetPlans, middleware.NewPlansRateLimiter().Handler())
	api.Get("/analytics", h.Analytics.GetAnalytics, middleware.NewAnalyticsRateLimiter().Handler())
}
