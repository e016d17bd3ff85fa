package handler

import (
	"math"

	"github.com/gofiber/fiber/v3"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

type PlansHandler struct{}

func NewPlansHandler() *PlansHandler {
	return &PlansHandler{}
}

// planView decorates a plan with the yearly-billing savings percentage.
type planView struct {
	model.Plan
	SavingsPercentage float64 `json:"savings_percentage"`
}

// GetPlans handles GET /api/subscription/plans. The catalog is pure
// configuration, not dynamic data.
func (h *PlansHandler) GetPlans(c fiber.Ctx) error {
	plans := model.AllPlans()
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		var savings float64
		if p.PriceMonthly > 0 {
			annualized := p.PriceMonthly * 12
			savings = math.Round((annualized-p.PriceYearly)/annualized*1000) / 10
		}
		views = append(views, planView{Plan: p, SavingsPercentage: savings})
	}

	return c.JSON(fiber.Map{
		"plans":       views,
		"total_plans": len(views),
		"currency":    "USD",
	})
}
