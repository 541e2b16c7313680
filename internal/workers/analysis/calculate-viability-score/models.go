// internal/workers/analysis/calculate-viability-score/models.go
package calculateviabilityscore

import "edital-workers/internal/models"

type Input struct {
	Bid     *models.BidDescriptor  `json:"bid"`
	Profile *models.CompanyProfile `json:"companyProfile"`
}

type Output struct {
	Scores models.ScoreSet `json:"viabilityScores"`
}
