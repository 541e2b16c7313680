// internal/engine/decision/decision.go
package decision

import (
	"fmt"
	"strings"

	"edital-workers/internal/models"
)

// Decision thresholds over the final viability score.
const (
	ParticipateThreshold = 75
	AnalyzeThreshold     = 60
)

const (
	positiveFactorFloor = 80
	negativeFactorCeil  = 40
)

// Evaluate maps a score set to a terminal decision with confidence and the
// factors that dominated it. Pure and deterministic: same scores, same decision.
func Evaluate(scores models.ScoreSet) models.Decision {
	factors := decisiveFactors(scores)

	var outcome models.Outcome
	var confidence int
	switch {
	case scores.Final >= ParticipateThreshold:
		outcome = models.OutcomeParticipate
		confidence = 60 + (scores.Final - ParticipateThreshold)
		if confidence > 95 {
			confidence = 95
		}
	case scores.Final >= AnalyzeThreshold:
		outcome = models.OutcomeAnalyzeFurther
		confidence = 40 + (scores.Final - AnalyzeThreshold)
	default:
		outcome = models.OutcomeDecline
		confidence = 60 + (AnalyzeThreshold - scores.Final)
	}

	if countNegative(factors) > 2 {
		confidence -= 20
		if confidence < 30 {
			confidence = 30
		}
	}
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	return models.Decision{
		Outcome:         outcome,
		Confidence:      confidence,
		Justification:   justification(outcome, scores, factors),
		DecisiveFactors: factors,
	}
}

// decisiveFactors extracts sub-scores extreme enough to drive the decision,
// in canonical dimension order so output is stable.
func decisiveFactors(scores models.ScoreSet) []models.DecisiveFactor {
	var factors []models.DecisiveFactor
	for _, d := range models.Dimensions {
		v := scores.Get(d)
		switch {
		case v >= positiveFactorFloor:
			factors = append(factors, models.DecisiveFactor{Name: d, Polarity: models.PolarityPositive, Score: v})
		case v <= negativeFactorCeil:
			factors = append(factors, models.DecisiveFactor{Name: d, Polarity: models.PolarityNegative, Score: v})
		}
	}
	return factors
}

func countNegative(factors []models.DecisiveFactor) int {
	n := 0
	for _, f := range factors {
		if f.Polarity == models.PolarityNegative {
			n++
		}
	}
	return n
}

func justification(outcome models.Outcome, scores models.ScoreSet, factors []models.DecisiveFactor) string {
	strengths := factorNames(factors, models.PolarityPositive)
	weaknesses := factorNames(factors, models.PolarityNegative)

	switch outcome {
	case models.OutcomeParticipate:
		if len(strengths) > 0 {
			return fmt.Sprintf("final score %d meets the participation threshold; strengths: %s", scores.Final, strings.Join(strengths, ", "))
		}
		return fmt.Sprintf("final score %d meets the participation threshold with a balanced profile", scores.Final)
	case models.OutcomeAnalyzeFurther:
		if len(weaknesses) > 0 {
			return fmt.Sprintf("final score %d is borderline; review %s before committing", scores.Final, strings.Join(weaknesses, ", "))
		}
		return fmt.Sprintf("final score %d is borderline; a deeper review of the edital is recommended", scores.Final)
	default:
		if len(weaknesses) > 0 {
			return fmt.Sprintf("final score %d is below the viability threshold; weaknesses: %s", scores.Final, strings.Join(weaknesses, ", "))
		}
		return fmt.Sprintf("final score %d is below the viability threshold", scores.Final)
	}
}

func factorNames(factors []models.DecisiveFactor, polarity models.FactorPolarity) []string {
	var names []string
	for _, f := range factors {
		if f.Polarity == polarity {
			names = append(names, string(f.Name))
		}
	}
	return names
}
