// internal/engine/scoring/technical.go
package scoring

import (
	"math"
	"strings"

	"edital-workers/internal/models"
)

// genericTechKeywords signal a technology object even when the company has no
// matching declared expertise area.
var genericTechKeywords = []string{
	"software", "sistema", "desenvolvimento", "tecnologia da informacao",
	"tecnologia da informação", "informatica", "informática", "aplicativo",
	"portal", "dados", "infraestrutura de ti",
}

// complexityKeywords flag delivery complexity in the object text.
var complexityKeywords = []string{
	"integracao", "integração", "migracao", "migração", "alta disponibilidade",
	"tempo real", "legado", "interoperabilidade", "escalabilidade",
	"customizacao", "customização", "auditoria",
}

// techVocabulary is the fixed list of technologies recognized in object texts.
var techVocabulary = []string{
	"java", "python", ".net", "node", "react", "angular", "flutter",
	"oracle", "postgresql", "mysql", "sql server", "mongodb",
	"aws", "azure", "google cloud", "kubernetes", "docker",
	"sap", "power bi", "etl",
}

// Technical scores the fit between the bid object and the company's declared
// expertise and technologies. Base 50.
func (c *Calculator) Technical(bid *models.BidDescriptor, profile *models.CompanyProfile) int {
	score := 50
	object := normalize(bid.ObjectDescription)

	if matchesExpertise(object, profile) {
		score += 25
	} else {
		score -= 15
	}

	score += complexityAdjustment(countMatches(object, complexityKeywords))

	required := requiredTechnologies(object)
	if len(required) == 0 {
		score += 5
	} else {
		known := 0
		for _, tech := range required {
			if knowsTechnology(profile, tech) {
				known++
			}
		}
		ratio := float64(known) / float64(len(required))
		score += int(math.Round(ratio * 20))
	}

	return clamp(score)
}

func matchesExpertise(object string, profile *models.CompanyProfile) bool {
	if profile != nil {
		for _, area := range profile.ExpertiseAreas {
			if area != "" && strings.Contains(object, normalize(area)) {
				return true
			}
		}
	}
	return containsAny(object, genericTechKeywords)
}

// complexityAdjustment maps the number of complexity keywords found in the
// object to a score delta: low complexity is a plus, heavy complexity a risk.
func complexityAdjustment(matches int) int {
	switch {
	case matches == 0:
		return 15
	case matches == 1:
		return 10
	case matches == 2:
		return 5
	case matches == 3:
		return 0
	case matches == 4:
		return -5
	default:
		return -10
	}
}

// requiredTechnologies extracts the fixed-vocabulary technologies the object
// text explicitly names.
func requiredTechnologies(object string) []string {
	var found []string
	for _, tech := range techVocabulary {
		if strings.Contains(object, tech) {
			found = append(found, tech)
		}
	}
	return found
}

func knowsTechnology(profile *models.CompanyProfile, tech string) bool {
	if profile == nil {
		return false
	}
	for _, t := range profile.Technologies {
		if strings.Contains(normalize(t), tech) || strings.Contains(tech, normalize(t)) {
			return true
		}
	}
	return false
}
