// internal/workers/analysis/store-analysis/models.go
package storeanalysis

import (
	"time"

	"edital-workers/internal/models"
)

type Input struct {
	AnalysisID     string                          `json:"analysisId,omitempty"`
	BidID          string                          `json:"bidId"`
	CompanyID      string                          `json:"companyId"`
	Scores         models.ScoreSet                 `json:"viabilityScores"`
	Decision       *models.Decision                `json:"decision,omitempty"`
	Recommendation *models.StrategicRecommendation `json:"recommendation,omitempty"`
	Narrative      string                          `json:"narrative,omitempty"`
}

type Output struct {
	AnalysisID   string    `json:"analysisId"`
	OverallScore int       `json:"overallScore"`
	StoredAt     time.Time `json:"storedAt"`
}
