// internal/engine/scoring/risk.go
package scoring

import "edital-workers/internal/models"

var federalBodyKeywords = []string{"federal", "ministerio", "ministério", "uniao", "união"}

var municipalBodyKeywords = []string{"prefeitura", "municipal", "camara municipal", "câmara municipal"}

// highRiskKeywords in the object text indicate contractual exposure beyond
// the ordinary: uptime commitments, penalties, mission-critical operation.
var highRiskKeywords = []string{
	"missao critica", "missão crítica", "24x7", "24 x 7",
	"sla", "multa", "penalidade", "ininterrupto", "plantao", "plantão",
}

// Risk scores execution and contractual risk. Base 80: public contracts
// default to manageable risk; specific signals pull the score down.
func (c *Calculator) Risk(bid *models.BidDescriptor) int {
	score := 80
	body := normalize(bid.Body.Name)

	if containsAny(body, federalBodyKeywords) {
		score += 10
	} else if containsAny(body, municipalBodyKeywords) {
		score -= 5
	}

	switch bid.Modality {
	case models.ModalityDispensaEmergencia:
		score -= 20
	case models.ModalityRegistroDePrecos:
		score -= 10
	}

	switch {
	case bid.EstimatedValue > 1_000_000:
		score -= 15
	case bid.EstimatedValue > 500_000:
		score -= 10
	case bid.EstimatedValue > 0 && bid.EstimatedValue < 50_000:
		score -= 5
	}

	if bid.AllowsSubcontract {
		score += 5
	}
	if bid.AllowsConsortium {
		score -= 10
	}

	if bid.ExecutionDays > 0 && bid.ExecutionDays < 30 {
		score -= 20
	}

	score -= 10 * countMatches(normalize(bid.ObjectDescription), highRiskKeywords)

	return clamp(score)
}
