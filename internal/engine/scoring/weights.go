// internal/engine/scoring/weights.go
package scoring

import (
	"fmt"
	"math"

	"edital-workers/internal/models"
)

const weightTolerance = 1e-9

// Weights is the aggregation weight vector over the six sub-scores.
// Weights must sum to exactly 1.0; a malformed vector is rejected at
// construction time, never silently renormalized.
type Weights struct {
	Financial   float64 `mapstructure:"financial" json:"financial"`
	Technical   float64 `mapstructure:"technical" json:"technical"`
	Documentary float64 `mapstructure:"documentary" json:"documentary"`
	Timeline    float64 `mapstructure:"timeline" json:"timeline"`
	Risk        float64 `mapstructure:"risk" json:"risk"`
	Competition float64 `mapstructure:"competition" json:"competition"`
}

// DefaultWeights is the production weight vector.
var DefaultWeights = Weights{
	Financial:   0.25,
	Technical:   0.20,
	Documentary: 0.15,
	Timeline:    0.15,
	Risk:        0.15,
	Competition: 0.10,
}

// Get returns the weight for a dimension.
func (w Weights) Get(d models.Dimension) float64 {
	switch d {
	case models.DimFinancial:
		return w.Financial
	case models.DimTechnical:
		return w.Technical
	case models.DimDocumentary:
		return w.Documentary
	case models.DimTimeline:
		return w.Timeline
	case models.DimRisk:
		return w.Risk
	case models.DimCompetition:
		return w.Competition
	}
	return 0
}

// Validate checks the vector sums to 1.0 within tolerance and has no
// negative entries.
func (w Weights) Validate() error {
	sum := 0.0
	for _, d := range models.Dimensions {
		v := w.Get(d)
		if v < 0 {
			return fmt.Errorf("weight for %s is negative: %v", d, v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Aggregate computes the weighted final score, rounded to the nearest integer.
func (w Weights) Aggregate(s models.ScoreSet) int {
	total := 0.0
	for _, d := range models.Dimensions {
		total += w.Get(d) * float64(s.Get(d))
	}
	return int(math.Round(total))
}
