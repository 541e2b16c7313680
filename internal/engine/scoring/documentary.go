// internal/engine/scoring/documentary.go
package scoring

import (
	"strings"

	"edital-workers/internal/models"
)

var technicalDocKeywords = []string{
	"atestado", "tecnic", "técnic", "registro profissional", "acervo",
	"responsavel tecnico", "responsável técnico", "crea", "certificacao", "certificação",
}

var financialDocKeywords = []string{
	"balanco", "balanço", "financeir", "falencia", "falência",
	"capital social", "patrimonio liquido", "patrimônio líquido", "indice de liquidez",
}

// Documentary scores the documentation burden. Base 70: most active bidders
// already hold the basic habilitation set; only technical and financial
// documents add real effort.
func (c *Calculator) Documentary(bid *models.BidDescriptor, profile *models.CompanyProfile) int {
	score := 70

	technical, financial := 0, 0
	for _, doc := range bid.RequiredDocuments {
		d := normalize(doc)
		switch {
		case matchesKeyword(d, technicalDocKeywords):
			technical++
		case matchesKeyword(d, financialDocKeywords):
			financial++
		}
	}

	if technical > 3 {
		score -= 20
	} else if technical > 1 {
		score -= 10
	}

	if financial > 2 {
		score -= 15
	} else if financial > 0 {
		score -= 5
	}

	if bid.SmallBizBenefit && profile != nil && profile.Size.QualifiesForSmallBizBenefit() {
		score += 15
	}

	if n := len(bid.Qualification.Technical); n > 5 {
		score -= 15
	} else if n > 2 {
		score -= 8
	}

	return clamp(score)
}

func matchesKeyword(doc string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(doc, k) {
			return true
		}
	}
	return false
}
