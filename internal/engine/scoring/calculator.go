// internal/engine/scoring/calculator.go
package scoring

import (
	"strings"
	"time"

	"edital-workers/internal/models"
)

// Calculator evaluates a bid against a company profile and produces the six
// viability sub-scores plus their weighted aggregate. It holds no state
// besides the weight vector, so a single instance is safe for concurrent use
// and every evaluation is a pure function of its inputs.
type Calculator struct {
	weights Weights
}

// NewCalculator builds a Calculator, rejecting a weight vector that does not
// sum to 1.0.
func NewCalculator(w Weights) (*Calculator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{weights: w}, nil
}

// Weights returns the active weight vector.
func (c *Calculator) Weights() Weights {
	return c.weights
}

// Evaluate computes all sub-scores and the weighted final score. The clock is
// passed in so identical inputs always yield identical output.
func (c *Calculator) Evaluate(bid *models.BidDescriptor, profile *models.CompanyProfile, now time.Time) models.ScoreSet {
	s := models.ScoreSet{
		Financial:   c.Financial(bid, profile),
		Technical:   c.Technical(bid, profile),
		Documentary: c.Documentary(bid, profile),
		Timeline:    c.Timeline(bid, now),
		Risk:        c.Risk(bid),
		Competition: c.Competition(bid, profile, now),
	}
	s.Final = c.weights.Aggregate(s)
	return s
}

// clamp bounds a score to [0,100]. Every sub-score goes through it exactly once.
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// normalize lowers case for keyword matching. Bid texts mix casing freely.
func normalize(s string) string {
	return strings.ToLower(s)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
