package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/viraldaily/viraldaily-go/internal/model"
	"github.com/viraldaily/viraldaily-go/pkg/hash"
)

// tierLocalKey is the request-local slot holding the resolved tier.
const tierLocalKey = "user_tier"

// NewTierResolver resolves the caller's subscription tier from the
// X-API-Key header once per request. resolve is supplied by the tier
// service; unknown or absent keys resolve to Free. How the key was issued
// is outside this layer's concern.
func NewTierResolver(resolve func(apiKey string) model.Tier) fiber.Handler {
	return func(c fiber.Ctx) error {
		apiKey := c.Get("X-API-Key")
		tier := resolve(apiKey)
		c.Locals(tierLocalKey, tier)

		if apiKey != "" {
			Logger.Debug().
				Str("key_fingerprint", hash.KeyFingerprint(apiKey)).
				Str("tier", string(tier)).
				Msg("api key resolved")
		}
		return c.Next()
	}
}

// TierFromCtx returns the tier resolved for this request, defaulting to Free.
func TierFromCtx(c fiber.Ctx) model.Tier {
	if tier, ok := c.Locals(tierLocalKey).(model.Tier); ok {
		return tier
	}
	return model.TierFree
}
