// internal/engine/recommendation/strategy.go
package recommendation

import (
	"sort"

	"edital-workers/internal/models"
)

// StrategyBalanced is the fallback when no dimension stands out with a
// dedicated strategy (risk intentionally has none; a high risk score means
// low risk, which is not something to compete on).
const StrategyBalanced = "balanced"

var strategyByDimension = map[models.Dimension]string{
	models.DimFinancial:   "price-competitiveness",
	models.DimTechnical:   "technical-differentiation",
	models.DimDocumentary: "exemplary-compliance",
	models.DimTimeline:    "delivery-agility",
	models.DimCompetition: "unique-positioning",
}

var advantageByDimension = map[models.Dimension]string{
	models.DimFinancial:   "contract size fits the company's financial capacity",
	models.DimTechnical:   "strong technical fit with the bid object",
	models.DimDocumentary: "habilitation documents already in place",
	models.DimTimeline:    "comfortable preparation and execution schedule",
	models.DimRisk:        "low contractual and execution risk",
	models.DimCompetition: "favorable competitive landscape",
}

// selectStrategy picks the strategy label from the two highest sub-scores:
// the first ranked dimension with a lookup entry wins.
func selectStrategy(scores models.ScoreSet) string {
	ranked := rankDimensions(scores)
	for _, d := range ranked[:2] {
		if label, ok := strategyByDimension[d]; ok {
			return label
		}
	}
	return StrategyBalanced
}

// rankDimensions sorts dimensions by score descending, canonical order as
// tie-break, so ranking is deterministic.
func rankDimensions(scores models.ScoreSet) []models.Dimension {
	ranked := make([]models.Dimension, len(models.Dimensions))
	copy(ranked, models.Dimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores.Get(ranked[i]) > scores.Get(ranked[j])
	})
	return ranked
}

// competitiveAdvantages lists the dimensions strong enough to lead with.
func competitiveAdvantages(scores models.ScoreSet) []string {
	var advantages []string
	for _, d := range models.Dimensions {
		if scores.Get(d) >= 80 {
			advantages = append(advantages, advantageByDimension[d])
		}
	}
	return advantages
}
