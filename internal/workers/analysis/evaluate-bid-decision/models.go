// internal/workers/analysis/evaluate-bid-decision/models.go
package evaluatebiddecision

import "edital-workers/internal/models"

type Input struct {
	Scores models.ScoreSet `json:"viabilityScores"`
}

type Output struct {
	Decision models.Decision `json:"decision"`
}
