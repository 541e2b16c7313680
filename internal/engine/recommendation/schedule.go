// internal/engine/recommendation/schedule.go
package recommendation

import (
	"time"

	"edital-workers/internal/models"
)

// milestoneFloorDays keeps every milestone at least one calendar day even on
// very tight openings.
const milestoneFloorDays = 1

type milestoneSpec struct {
	activity   string
	proportion float64
}

// Fixed preparation phases; proportions are shares of the runway to opening.
var milestoneSpecs = []milestoneSpec{
	{"edital analysis", 0.10},
	{"documentation", 0.30},
	{"technical proposal", 0.40},
	{"financial proposal", 0.10},
	{"final review", 0.10},
}

// buildSchedule lays the milestones out sequentially starting today. Each
// duration is the milestone's proportion of the days left until opening,
// floored to one day.
func buildSchedule(bid *models.BidDescriptor, now time.Time) []models.Milestone {
	days := bid.DaysUntilOpening(now)
	if days < 0 {
		days = 0
	}

	schedule := make([]models.Milestone, 0, len(milestoneSpecs))
	start := now
	for _, spec := range milestoneSpecs {
		duration := int(spec.proportion * float64(days))
		if duration < milestoneFloorDays {
			duration = milestoneFloorDays
		}
		end := start.AddDate(0, 0, duration)
		schedule = append(schedule, models.Milestone{
			Activity:     spec.activity,
			StartDate:    start,
			EndDate:      end,
			DurationDays: duration,
		})
		start = end
	}
	return schedule
}
