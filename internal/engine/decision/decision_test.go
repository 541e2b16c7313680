// internal/engine/decision/decision_test.go
package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edital-workers/internal/models"
)

// flatScores builds a score set where every sub-score sits mid-range (so no
// decisive factors fire) and only the final differs.
func flatScores(final int) models.ScoreSet {
	return models.ScoreSet{
		Financial: 60, Technical: 60, Documentary: 60,
		Timeline: 60, Risk: 60, Competition: 60,
		Final: final,
	}
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		final              int
		expectedOutcome    models.Outcome
		expectedConfidence int
	}{
		{final: 100, expectedOutcome: models.OutcomeParticipate, expectedConfidence: 85},
		{final: 92, expectedOutcome: models.OutcomeParticipate, expectedConfidence: 77},
		{final: 75, expectedOutcome: models.OutcomeParticipate, expectedConfidence: 60},
		{final: 74, expectedOutcome: models.OutcomeAnalyzeFurther, expectedConfidence: 54},
		{final: 60, expectedOutcome: models.OutcomeAnalyzeFurther, expectedConfidence: 40},
		{final: 59, expectedOutcome: models.OutcomeDecline, expectedConfidence: 61},
		{final: 30, expectedOutcome: models.OutcomeDecline, expectedConfidence: 90},
		{final: 0, expectedOutcome: models.OutcomeDecline, expectedConfidence: 100},
	}

	for _, tt := range tests {
		dec := Evaluate(flatScores(tt.final))
		assert.Equal(t, tt.expectedOutcome, dec.Outcome, "final=%d", tt.final)
		assert.Equal(t, tt.expectedConfidence, dec.Confidence, "final=%d", tt.final)
	}
}

func TestEvaluate_ConfidenceCappedAt95ForParticipate(t *testing.T) {
	// 60 + (100-75) = 85; push final beyond the cap via a synthetic value.
	dec := Evaluate(flatScores(120))
	assert.Equal(t, models.OutcomeParticipate, dec.Outcome)
	assert.Equal(t, 95, dec.Confidence)
}

func TestEvaluate_DecisiveFactors(t *testing.T) {
	scores := models.ScoreSet{
		Financial:   100,
		Technical:   95,
		Documentary: 85,
		Timeline:    90,
		Risk:        80,
		Competition: 95,
		Final:       92,
	}
	dec := Evaluate(scores)

	assert.Len(t, dec.DecisiveFactors, 6)
	for _, f := range dec.DecisiveFactors {
		assert.Equal(t, models.PolarityPositive, f.Polarity)
	}
	// Canonical order keeps output stable.
	assert.Equal(t, models.DimFinancial, dec.DecisiveFactors[0].Name)
	assert.Equal(t, models.DimCompetition, dec.DecisiveFactors[5].Name)
	assert.Contains(t, dec.Justification, "strengths")
}

func TestEvaluate_MidScoresYieldNoFactors(t *testing.T) {
	dec := Evaluate(flatScores(62))
	assert.Empty(t, dec.DecisiveFactors)
}

func TestEvaluate_ManyNegativesReduceConfidence(t *testing.T) {
	scores := models.ScoreSet{
		Financial:   30,
		Technical:   35,
		Documentary: 40,
		Timeline:    70,
		Risk:        70,
		Competition: 70,
		Final:       48,
	}
	dec := Evaluate(scores)

	assert.Equal(t, models.OutcomeDecline, dec.Outcome)
	// 60 + (60-48) = 72, minus 20 for three negative factors = 52
	assert.Equal(t, 52, dec.Confidence)
	assert.Equal(t, 3, countNegative(dec.DecisiveFactors))
	assert.Contains(t, dec.Justification, "weaknesses")
}

func TestEvaluate_ConfidencePenaltyFloorsAt30(t *testing.T) {
	scores := models.ScoreSet{
		Financial:   10,
		Technical:   10,
		Documentary: 10,
		Timeline:    10,
		Risk:        90,
		Competition: 90,
		Final:       65,
	}
	dec := Evaluate(scores)

	// 40 + (65-60) = 45, penalty would give 25, floored at 30.
	assert.Equal(t, models.OutcomeAnalyzeFurther, dec.Outcome)
	assert.Equal(t, 30, dec.Confidence)
}

func TestEvaluate_ConfidenceAlwaysInRange(t *testing.T) {
	for final := 0; final <= 100; final++ {
		dec := Evaluate(flatScores(final))
		assert.GreaterOrEqual(t, dec.Confidence, 0, "final=%d", final)
		assert.LessOrEqual(t, dec.Confidence, 100, "final=%d", final)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	scores := models.ScoreSet{Financial: 81, Technical: 39, Documentary: 55, Timeline: 88, Risk: 41, Competition: 80, Final: 66}
	first := Evaluate(scores)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(scores))
	}
}
