package model

// Tier is a subscription tier identifier.
type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

// Unlimited marks a plan with no daily video cap.
const Unlimited = -1

// Plan is the immutable configuration value for one subscription tier.
type Plan struct {
	Tier            Tier     `json:"tier"`
	Name            string   `json:"name"`
	PriceMonthly    float64  `json:"price_monthly"`
	PriceYearly     float64  `json:"price_yearly"`
	MaxVideosPerDay int      `json:"max_videos_per_day"`
	AdsEnabled      bool     `json:"ads_included"`
	APIAccess       bool     `json:"api_access"`
	Analytics       bool     `json:"analytics"`
	Features        []string `json:"features"`
	Popular         bool     `json:"popular"`
}

// Unlimited reports whether the plan has no daily cap.
func (p Plan) Unlimited() bool {
	return p.MaxVideosPerDay == Unlimited
}

// plans is the static tier catalog. Loaded once, never mutated.
var plans = map[Tier]Plan{
	TierFree: {
		Tier:            TierFree,
		Name:            "Free",
		PriceMonthly:    0,
		PriceYearly:     0,
		MaxVideosPerDay: 40,
		AdsEnabled:      true,
		Features: []string{
			"40 viral videos daily",
			"Basic platform access",
			"Community support",
			"Ad-supported experience",
		},
	},
	TierPro: {
		Tier:            TierPro,
		Name:            "Pro",
		PriceMonthly:    9.99,
		PriceYearly:     99.99,
		MaxVideosPerDay: 100,
		APIAccess:       true,
		Analytics:       true,
		Popular:         true,
		Features: []string{
			"100 viral videos daily",
			"Ad-free experience",
			"API access",
			"Basic analytics",
			"Priority support",
		},
	},
	TierBusiness: {
		Tier:            TierBusiness,
		Name:            "Business",
		PriceMonthly:    29.99,
		PriceYearly:     299.99,
		MaxVideosPerDay: Unlimited,
		APIAccess:       true,
		Analytics:       true,
		Features: []string{
			"Unlimited viral videos",
			"Advanced analytics",
			"Custom API integration",
			"White-label options",
			"Dedicated support",
		},
	},
}

// PlanFor returns the plan for a tier. Unknown tiers resolve to Free.
func PlanFor(tier Tier) Plan {
	if p, ok := plans[tier]; ok {
		return p
	}
	return plans[TierFree]
}

// AllPlans returns the tier catalog in display order.
func AllPlans() []Plan {
	return []Plan{plans[TierFree], plans[TierPro], plans[TierBusiness]}
}
