// internal/engine/scoring/financial.go
package scoring

import "edital-workers/internal/models"

// The ideal contract size sits between 5% and 30% of annual revenue: big
// enough to matter, small enough not to strain cash flow.
const (
	idealBandLow  = 0.05
	idealBandHigh = 0.30
)

// Financial scores how well the contract value fits the company's finances.
// Base 50. Missing value or revenue contributes no band adjustment.
func (c *Calculator) Financial(bid *models.BidDescriptor, profile *models.CompanyProfile) int {
	score := 50

	if bid.EstimatedValue > 0 && profile != nil && profile.AnnualRevenue > 0 {
		low := profile.AnnualRevenue * idealBandLow
		high := profile.AnnualRevenue * idealBandHigh
		switch {
		case bid.EstimatedValue >= low && bid.EstimatedValue <= high:
			score += 30
		case bid.EstimatedValue < low:
			score += 15
		case bid.EstimatedValue <= 2*high:
			score += 20
		default:
			score += 5
		}
	}

	if bid.Modality.IsAuction() {
		score += 10
	} else if bid.Modality == models.ModalityConcorrencia {
		score -= 5
	}

	// Public-sector payment terms; unset means the statutory 30 days.
	term := bid.PaymentTermDays
	if term <= 0 {
		term = 30
	}
	switch {
	case term <= 30:
		score += 15
	case term <= 60:
		score += 5
	default:
		score -= 10
	}

	return clamp(score)
}
