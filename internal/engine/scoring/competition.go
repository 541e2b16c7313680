// internal/engine/scoring/competition.go
package scoring

import (
	"strings"
	"time"

	"edital-workers/internal/models"
)

// majorMarketStates concentrate most bidders; anywhere else the field thins out.
var majorMarketStates = map[string]bool{
	"SP": true, "RJ": true, "MG": true, "DF": true,
}

// specializationKeywords mark niche objects where few companies can compete.
var specializationKeywords = []string{
	"geoprocessamento", "biometria", "telemetria", "atuarial",
	"telemedicina", "aerofotogrametria", "pericia", "perícia",
	"interoperabilidade em saude", "assinatura digital icp",
}

// Competition estimates how crowded the dispute will be (higher = fewer
// expected competitors). Base 50.
func (c *Calculator) Competition(bid *models.BidDescriptor, profile *models.CompanyProfile, now time.Time) int {
	score := 50

	if bid.EstimatedValue > 0 {
		switch {
		case bid.EstimatedValue < 100_000:
			score += 25
		case bid.EstimatedValue < 300_000:
			score += 15
		case bid.EstimatedValue < 1_000_000:
			score += 5
		default:
			score -= 15
		}
	}

	score += 8 * countMatches(normalize(bid.ObjectDescription), specializationKeywords)

	state := strings.ToUpper(strings.TrimSpace(bid.Body.State))
	if state != "" {
		if profile != nil && strings.EqualFold(profile.State, state) {
			score += 10
		}
		if !majorMarketStates[state] {
			score += 15
		}
	}

	switch {
	case bid.Modality == models.ModalityConvite:
		score += 30
	case bid.Modality == models.ModalityTomadaDePrecos:
		score += 10
	case bid.Modality.IsAuction():
		score -= 10
	}

	if bid.SmallBizBenefit && profile != nil && profile.Size.QualifiesForSmallBizBenefit() {
		score += 15
	}

	// A short runway filters out competitors that cannot mobilize in time.
	if !bid.OpeningDate.IsZero() {
		if days := bid.DaysUntilOpening(now); days >= 0 && days < 7 {
			score += 10
		}
	}

	return clamp(score)
}
