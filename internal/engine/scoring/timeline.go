// internal/engine/scoring/timeline.go
package scoring

import (
	"time"

	"edital-workers/internal/models"
)

// Timeline scores whether the bid's dates leave room to prepare and execute.
// Base 50. An unset opening date or duration contributes no adjustment.
func (c *Calculator) Timeline(bid *models.BidDescriptor, now time.Time) int {
	score := 50

	if !bid.OpeningDate.IsZero() {
		switch days := bid.DaysUntilOpening(now); {
		case days >= 15:
			score += 20
		case days >= 10:
			score += 10
		case days >= 5:
			// enough time, no bonus
		default:
			score -= 20
		}
	}

	if bid.ExecutionDays > 0 {
		switch {
		case bid.ExecutionDays >= 180:
			score += 15
		case bid.ExecutionDays >= 90:
			score += 10
		case bid.ExecutionDays >= 30:
			score += 5
		default:
			score -= 15
		}
	}

	if bid.ValidityMonths >= 12 {
		score += 10
	} else if bid.ValidityMonths >= 6 {
		score += 5
	}

	return clamp(score)
}
