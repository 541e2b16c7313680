// internal/workers/analysis/generate-narrative/models.go
package generatenarrative

import "edital-workers/internal/models"

type Input struct {
	Bid            *models.BidDescriptor           `json:"bid"`
	Scores         models.ScoreSet                 `json:"viabilityScores"`
	Decision       models.Decision                 `json:"decision"`
	Recommendation *models.StrategicRecommendation `json:"recommendation,omitempty"`
}

type Output struct {
	Narrative string `json:"narrative"`
	Source    string `json:"narrativeSource"`
}
