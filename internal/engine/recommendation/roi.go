// internal/engine/recommendation/roi.go
package recommendation

import (
	"math"

	"edital-workers/internal/models"
)

// Cost inflators for weak spots: a shaky technical fit or a tight schedule
// both make execution more expensive. They compound.
const (
	technicalRiskInflator = 1.10
	timelineRiskInflator  = 1.05
)

// Fixed cost composition shares.
const (
	executionShare = 0.60
	teamShare      = 0.25
	adminShare     = 0.15
)

// estimateROI projects the return of winning the bid at the standard cost
// basis of 75% of the estimated value.
func estimateROI(bid *models.BidDescriptor, scores models.ScoreSet) models.ROIEstimate {
	cost := baseCostFactor * bid.EstimatedValue
	if scores.Technical < 60 {
		cost *= technicalRiskInflator
	}
	if scores.Timeline < 60 {
		cost *= timelineRiskInflator
	}

	margin := bid.EstimatedValue - cost

	var percent float64
	if cost > 0 {
		percent = round2(margin / cost * 100)
	}

	payback := 0
	if bid.ExecutionDays > 0 {
		payback = int(math.Ceil(float64(bid.ExecutionDays) / 30))
	}

	return models.ROIEstimate{
		Percent:        percent,
		AbsoluteReturn: round2(margin),
		PaybackMonths:  payback,
		EstimatedCost:  round2(cost),
		CostBreakdown: models.CostBreakdown{
			Execution:      round2(cost * executionShare),
			Team:           round2(cost * teamShare),
			Administrative: round2(cost * adminShare),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
