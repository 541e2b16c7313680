// internal/engine/recommendation/partnership.go
package recommendation

import "edital-workers/internal/models"

var partnerSelectionCriteria = []string{
	"proven delivery record in public contracts",
	"complementary technical certifications",
	"financial standing compatible with the contract value",
	"no sanctions in public supplier registries",
}

// partnershipPlan flags when the company should not go alone. The needed flag
// is driven by technical or financial gaps; legal consultancy and consortium
// entries are additional suggestions that do not flip the flag by themselves.
func partnershipPlan(bid *models.BidDescriptor, scores models.ScoreSet) models.PartnershipPlan {
	plan := models.PartnershipPlan{}

	if scores.Technical < 60 {
		plan.Needed = true
		plan.Types = append(plan.Types, "technical-partner")
	}
	if scores.Financial < 50 && bid.EstimatedValue > 300_000 {
		plan.Needed = true
		plan.Types = append(plan.Types, "financial-partner")
	}
	if scores.Documentary < 60 {
		plan.Types = append(plan.Types, "legal-consultancy")
	}
	if bid.AllowsConsortium {
		plan.Types = append(plan.Types, "consortium")
	}

	if len(plan.Types) > 0 {
		plan.SelectionCriteria = partnerSelectionCriteria
	}
	return plan
}
