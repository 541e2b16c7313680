// internal/engine/recommendation/pricing.go
package recommendation

import (
	"math"

	"edital-workers/internal/models"
)

// baseCostFactor: proposals are costed at 75% of the estimated value; the
// margin is applied on top of that cost.
const baseCostFactor = 0.75

// pricingStrategy derives the margin and suggested price from the competitive
// picture: a crowded dispute squeezes the margin, a thin one allows more.
func pricingStrategy(bid *models.BidDescriptor, scores models.ScoreSet) models.PricingStrategy {
	var margin float64
	var label string
	switch {
	case scores.Competition > 70:
		margin, label = 10, "competitive"
	case scores.Competition < 50:
		margin, label = 8, "defensive"
	default:
		margin, label = 12, "standard"
	}

	if scores.Technical > 80 {
		margin += 3
	}
	if bid.EstimatedValue > 500_000 {
		margin -= 2
	}

	suggested := math.Round(baseCostFactor * bid.EstimatedValue * (1 + margin/100))

	return models.PricingStrategy{
		Label:          label,
		MarginPercent:  margin,
		SuggestedPrice: suggested,
	}
}
