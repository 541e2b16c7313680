// internal/workers/analysis/compose-recommendation/models.go
package composerecommendation

import "edital-workers/internal/models"

type Input struct {
	Bid      *models.BidDescriptor `json:"bid"`
	Scores   models.ScoreSet       `json:"viabilityScores"`
	Decision models.Decision       `json:"decision"`
}

type Output struct {
	Recommendation models.StrategicRecommendation `json:"recommendation"`
}
