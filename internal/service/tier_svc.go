package service

import (
	"errors"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

// ErrForbidden is returned when a caller's tier lacks a required feature.
// Unlike source-level failures it propagates to the caller unmodified.
var ErrForbidden = errors.New("subscription tier lacks required feature")

// TierMeta carries the advisory flags the presentation layer needs.
// They do not enforce ad rendering themselves.
type TierMeta struct {
	HasAds                   bool
	PremiumFeaturesAvailable bool
}

// TierService resolves caller identities to subscription tiers and enforces
// per-tier visibility. Gating is stateless per request: no sessions, no
// persisted counters.
type TierService struct {
	proKeys      map[string]struct{}
	businessKeys map[string]struct{}
}

// NewTierService builds the tier lookup from configured API key lists.
// Callers presenting no key, or an unknown one, resolve to Free.
func NewTierService(proKeys, businessKeys []string) *TierService {
	s := &TierService{
		proKeys:      make(map[string]struct{}, len(proKeys)),
		businessKeys: make(map[string]struct{}, len(businessKeys)),
	}
	for _, k := range proKeys {
		s.proKeys[k] = struct{}{}
	}
	for _, k := range businessKeys {
		s.businessKeys[k] = struct{}{}
	}
	return s
}

// ResolveTier maps an API key to its subscription tier.
func (s *TierService) ResolveTier(apiKey string) model.Tier {
	if apiKey == "" {
		return model.TierFree
	}
	if _, ok := s.businessKeys[apiKey]; ok {
		return model.TierBusiness
	}
	if _, ok := s.proKeys[apiKey]; ok {
		return model.TierPro
	}
	return model.TierFree
}

// EffectiveLimit caps a requested limit by the tier's daily cap.
// Unlimited plans pass the request through untruncated.
func (s *TierService) EffectiveLimit(requested int, tier model.Tier) int {
	plan := model.PlanFor(tier)
	if plan.Unlimited() || requested <= plan.MaxVideosPerDay {
		return requested
	}
	return plan.MaxVideosPerDay
}

// Apply truncates records to min(requested, tier cap) and computes the
// advisory metadata flags. Incoming order is preserved.
func (s *TierService) Apply(records []model.VideoRecord, requested int, tier model.Tier) ([]model.VideoRecord, TierMeta) {
	plan := model.PlanFor(tier)

	n := requested
	if !plan.Unlimited() && plan.MaxVideosPerDay < n {
		n = plan.MaxVideosPerDay
	}
	if n < len(records) {
		records = records[:n]
	}

	return records, TierMeta{
		HasAds:                   plan.AdsEnabled,
		PremiumFeaturesAvailable: plan.APIAccess,
	}
}

// RequireAPIAccess guards API-surface-only operations such as analytics.
// The decision is local; no upstream call is involved.
func (s *TierService) RequireAPIAccess(tier model.Tier) error {
	if !model.PlanFor(tier).APIAccess {
		return ErrForbidden
	}
	return nil
}
