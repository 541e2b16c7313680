// internal/engine/recommendation/composer.go
package recommendation

import (
	"time"

	"edital-workers/internal/models"
)

// Compose derives the full strategic recommendation from a scored and decided
// evaluation. The clock is an explicit argument: the composer performs no I/O
// and reads no global state, so identical inputs produce identical output.
func Compose(bid *models.BidDescriptor, scores models.ScoreSet, dec models.Decision, now time.Time) models.StrategicRecommendation {
	roi := estimateROI(bid, scores)

	return models.StrategicRecommendation{
		Decision:              dec,
		Scores:                scores,
		Strategy:              selectStrategy(scores),
		CompetitiveAdvantages: competitiveAdvantages(scores),
		ImmediateActions:      immediateActions(bid, dec, now),
		PreparationActions:    preparationActions(scores, dec),
		PostDecisionActions:   postDecisionActions(dec),
		Pricing:               pricingStrategy(bid, scores),
		Partnership:           partnershipPlan(bid, scores),
		Schedule:              buildSchedule(bid, now),
		ROI:                   roi,
		Priority:              priority(scores, dec, roi),
	}
}

func immediateActions(bid *models.BidDescriptor, dec models.Decision, now time.Time) []string {
	if dec.Outcome == models.OutcomeDecline {
		return nil
	}
	actions := []string{
		"read the full edital and annexes",
		"confirm the habilitation document checklist",
		"register questions before the clarification deadline",
	}
	if !bid.OpeningDate.IsZero() && bid.DaysUntilOpening(now) <= 10 {
		actions = append([]string{"urgent: opening session is close, mobilize the proposal team now"}, actions...)
	}
	return actions
}

func preparationActions(scores models.ScoreSet, dec models.Decision) []string {
	if dec.Outcome != models.OutcomeParticipate {
		return nil
	}
	actions := []string{
		"assemble technical proposal with evidence from past contracts",
		"collect and notarize habilitation documents",
		"prepare the price spreadsheet with the suggested margin",
	}
	if scores.Technical < 70 {
		actions = append(actions, "seek a technical partnership to close capability gaps")
	}
	if scores.Financial < 60 {
		actions = append(actions, "revise the cost structure before committing to the price")
	}
	return actions
}

func postDecisionActions(dec models.Decision) []string {
	switch dec.Outcome {
	case models.OutcomeParticipate:
		return []string{
			"track the opening session and record the result",
			"prepare challenge material in case of disqualification",
		}
	case models.OutcomeAnalyzeFurther:
		return []string{
			"schedule a go/no-go review before the question deadline",
		}
	default:
		return []string{
			"archive the analysis and monitor similar future editais",
		}
	}
}

// priority classifies the evaluation for the pipeline queue: the final score
// adjusted by projected return and decision confidence.
func priority(scores models.ScoreSet, dec models.Decision, roi models.ROIEstimate) string {
	p := scores.Final
	if roi.Percent > 25 {
		p += 10
	} else if roi.Percent < 10 {
		p -= 10
	}
	if dec.Outcome == models.OutcomeParticipate && dec.Confidence > 80 {
		p += 5
	}

	switch {
	case p >= 80:
		return "high"
	case p >= 60:
		return "medium"
	default:
		return "low"
	}
}
