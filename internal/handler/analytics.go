package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/viraldaily/viraldaily-go/internal/middleware"
	"github.com/viraldaily/viraldaily-go/internal/service"
)

type AnalyticsHandler struct {
	svc   *service.AnalyticsService
	tiers *service.TierService
}

func NewAnalyticsHandler(svc *service.AnalyticsService, tiers *service.TierService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, tiers: tiers}
}

// GetAnalytics handles GET /api/analytics (Pro/Business only).
func (h *AnalyticsHandler) GetAnalytics(c fiber.Ctx) error {
	tier := middleware.TierFromCtx(c)
	if err := h.tiers.RequireAPIAccess(tier); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN",
			"Analytics access requires a Pro or Business subscription")
	}

	overview, err := h.svc.Overview(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrAnalyticsUnavailable) {
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "ANALYTICS_UNAVAILABLE",
				"Analytics store is not configured")
		}
		middleware.Logger.Error().Err(err).Msg("analytics query failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to build analytics overview")
	}

	return c.JSON(overview)
}
