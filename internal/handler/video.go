package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/viraldaily/viraldaily-go/internal/middleware"
	"github.com/viraldaily/viraldaily-go/internal/model"
	"github.com/viraldaily/viraldaily-go/internal/service"
)

type VideoHandler struct {
	agg   *service.AggregatorService
	tiers *service.TierService
	cache *service.CacheService
}

func NewVideoHandler(agg *service.AggregatorService, tiers *service.TierService, cache *service.CacheService) *VideoHandler {
	return &VideoHandler{agg: agg, tiers: tiers, cache: cache}
}

// GetVideos handles GET /api/videos?platform=&limit=
//
// Upstream failures never surface here: the aggregator degrades to fallback
// records, so the only client errors are invalid filter values and the only
// server error is a scoring invariant violation.
func (h *VideoHandler) GetVideos(c fiber.Ctx) error {
	platform, errMsg := middleware.ValidatePlatform(fiber.Query[string](c, "platform"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	tier := middleware.TierFromCtx(c)

	if cached, err := h.cache.GetVideos(c.Context(), platform, limit, tier); err == nil && cached != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	// Fetch only what the tier can see; TierGate still enforces the cap.
	effective := h.tiers.EffectiveLimit(limit, tier)
	records, err := h.agg.Aggregate(c.Context(), platform, effective)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("aggregation failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to aggregate viral videos")
	}

	visible, meta := h.tiers.Apply(records, limit, tier)

	resp := model.VideoResponse{
		Videos:                   visible,
		Total:                    len(visible),
		Platform:                 platform,
		Date:                     time.Now().UTC(),
		UserTier:                 tier,
		HasAds:                   meta.HasAds,
		PremiumFeaturesAvailable: meta.PremiumFeaturesAvailable,
	}

	if err := h.cache.SetVideos(c.Context(), platform, limit, tier, resp); err != nil {
		middleware.Logger.Warn().Err(err).Msg("cache write failed")
	}

	return c.JSON(resp)
}
