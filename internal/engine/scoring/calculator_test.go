// internal/engine/scoring/calculator_test.go
package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edital-workers/internal/models"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestCalculator(t *testing.T) *Calculator {
	calc, err := NewCalculator(DefaultWeights)
	require.NoError(t, err)
	return calc
}

func smallCompanyProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		ID:             "company-1",
		Size:           models.SizeSmall,
		AnnualRevenue:  1_500_000,
		State:          "BA",
		ExpertiseAreas: []string{"desenvolvimento de software"},
		Technologies:   []string{"Java", "PostgreSQL"},
	}
}

// favorableBid mirrors the "Scenario A" shape: small contract, small-business
// benefit, comfortable dates, no risk flags.
func favorableBid() *models.BidDescriptor {
	return &models.BidDescriptor{
		ID:                "bid-a",
		Modality:          models.ModalityPregaoEletronico,
		Body:              models.IssuingBody{Name: "Secretaria de Educacao", State: "BA"},
		ObjectDescription: "Desenvolvimento de sistema de gestao escolar",
		EstimatedValue:    250_000,
		OpeningDate:       testNow.AddDate(0, 0, 15),
		ExecutionDays:     90,
		ValidityMonths:    12,
		SmallBizBenefit:   true,
		RequiredDocuments: []string{
			"Certidao negativa de debitos",
			"Contrato social",
			"Atestado de capacidade tecnica",
		},
		Qualification: models.QualificationRequirements{
			Technical: []string{"atestado compatível", "equipe mínima"},
		},
	}
}

// adverseBid mirrors "Scenario B": big value, consortium, three days to the
// opening, short execution.
func adverseBid() *models.BidDescriptor {
	return &models.BidDescriptor{
		ID:                "bid-b",
		Modality:          models.ModalityConcorrencia,
		Body:              models.IssuingBody{Name: "Ministerio da Educacao", State: "DF"},
		ObjectDescription: "Construcao e reforma de unidades escolares",
		EstimatedValue:    2_000_000,
		OpeningDate:       testNow.AddDate(0, 0, 3),
		ExecutionDays:     20,
		AllowsConsortium:  true,
		RequiredDocuments: []string{
			"Balanco patrimonial do ultimo exercicio",
			"Certidao negativa de falencia",
			"Atestado de capacidade tecnica",
			"Atestado de execucao de obra similar",
		},
		Qualification: models.QualificationRequirements{
			Technical: []string{"a", "b", "c", "d", "e", "f"},
		},
	}
}

func TestFinancial(t *testing.T) {
	calc := newTestCalculator(t)
	profile := smallCompanyProfile()

	tests := []struct {
		name     string
		bid      *models.BidDescriptor
		profile  *models.CompanyProfile
		expected int
	}{
		{
			name: "value in ideal band, auction, default payment term",
			// 50 +30 (5-30% of revenue) +10 (pregao) +15 (30d) = 105 -> 100
			bid: &models.BidDescriptor{
				EstimatedValue: 250_000,
				Modality:       models.ModalityPregaoEletronico,
			},
			profile:  profile,
			expected: 100,
		},
		{
			name: "value below band",
			// 50 +15 +10 +15 = 90
			bid: &models.BidDescriptor{
				EstimatedValue: 50_000,
				Modality:       models.ModalityPregaoEletronico,
			},
			profile:  profile,
			expected: 90,
		},
		{
			name: "value up to twice the band ceiling",
			// 50 +20 +10 +15 = 95
			bid: &models.BidDescriptor{
				EstimatedValue: 600_000,
				Modality:       models.ModalityPregaoPresencial,
			},
			profile:  profile,
			expected: 95,
		},
		{
			name: "value far above capacity, concorrencia, slow payment",
			// 50 +5 -5 -10 = 40
			bid: &models.BidDescriptor{
				EstimatedValue:  2_000_000,
				Modality:        models.ModalityConcorrencia,
				PaymentTermDays: 90,
			},
			profile:  profile,
			expected: 40,
		},
		{
			name: "missing profile contributes no band adjustment",
			// 50 +0 +0 +15 = 65
			bid: &models.BidDescriptor{
				EstimatedValue: 250_000,
				Modality:       models.ModalityTomadaDePrecos,
			},
			profile:  nil,
			expected: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Financial(tt.bid, tt.profile))
		})
	}
}

func TestTechnical(t *testing.T) {
	calc := newTestCalculator(t)
	profile := smallCompanyProfile()

	tests := []struct {
		name     string
		object   string
		profile  *models.CompanyProfile
		expected int
	}{
		{
			name: "generic tech object, zero complexity, no required tech",
			// 50 +25 +15 +5 = 95
			object:   "Desenvolvimento de sistema de gestao escolar",
			profile:  profile,
			expected: 95,
		},
		{
			name: "non-tech object without expertise match",
			// 50 -15 +15 +5 = 55
			object:   "Construcao e reforma de unidades escolares",
			profile:  profile,
			expected: 55,
		},
		{
			name: "partial technology match",
			// required: java, react, oracle; known: java -> round(1/3*20) = 7
			// 50 +25 +15 +7 = 97
			object:   "desenvolvimento de sistema em java e react com banco oracle",
			profile:  profile,
			expected: 97,
		},
		{
			name: "heavy complexity drags the score",
			// matches: integracao, migracao, legado, tempo real, alta disponibilidade (>4) -> -10
			// 50 +25 -10 +5 = 70
			object:   "sistema com integracao, migracao de legado, tempo real e alta disponibilidade",
			profile:  profile,
			expected: 70,
		},
		{
			name: "nil profile still scores via generic keywords",
			// 50 +25 +15 +5 = 95
			object:   "desenvolvimento de software de gestao",
			profile:  nil,
			expected: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bid := &models.BidDescriptor{ObjectDescription: tt.object}
			assert.Equal(t, tt.expected, calc.Technical(bid, tt.profile))
		})
	}
}

func TestDocumentary(t *testing.T) {
	calc := newTestCalculator(t)

	t.Run("light documentation with small business benefit", func(t *testing.T) {
		// 70 -0 (1 technical doc) -0 +15 (ME/EPP) -0 (2 technical reqs) = 85
		assert.Equal(t, 85, calc.Documentary(favorableBid(), smallCompanyProfile()))
	})

	t.Run("heavy documentation burden", func(t *testing.T) {
		// 70 -10 (2 technical docs) -5 (2 financial docs) -15 (6 technical reqs) = 40
		assert.Equal(t, 40, calc.Documentary(adverseBid(), smallCompanyProfile()))
	})

	t.Run("benefit requires qualifying size", func(t *testing.T) {
		profile := smallCompanyProfile()
		profile.Size = models.SizeLarge
		assert.Equal(t, 70, calc.Documentary(favorableBid(), profile))
	})

	t.Run("many technical attestations", func(t *testing.T) {
		bid := &models.BidDescriptor{
			RequiredDocuments: []string{
				"Atestado um", "Atestado dois", "Atestado tres", "Atestado quatro",
			},
		}
		// 70 -20 (>3 technical docs) = 50
		assert.Equal(t, 50, calc.Documentary(bid, nil))
	})
}

func TestTimeline(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name     string
		bid      *models.BidDescriptor
		expected int
	}{
		{
			name: "comfortable dates",
			// 50 +20 (15d) +10 (90d execution) +10 (12mo validity) = 90
			bid:      favorableBid(),
			expected: 90,
		},
		{
			name: "everything tight",
			// 50 -20 (3d) -15 (20d execution) = 15
			bid:      adverseBid(),
			expected: 15,
		},
		{
			name:     "no dates at all stays at base",
			bid:      &models.BidDescriptor{},
			expected: 50,
		},
		{
			name: "long execution, short validity, unset opening",
			// 50 +15 (200d) +5 (6mo) = 70
			bid:      &models.BidDescriptor{ExecutionDays: 200, ValidityMonths: 6},
			expected: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Timeline(tt.bid, testNow))
		})
	}
}

func TestRisk(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name     string
		bid      *models.BidDescriptor
		expected int
	}{
		{
			name:     "clean mid-size bid keeps the optimistic base",
			bid:      favorableBid(),
			expected: 80,
		},
		{
			name: "federal but big, consortium and rushed",
			// 80 +10 -15 (>1M) -10 (consortium) -20 (<30d execution) = 45
			bid:      adverseBid(),
			expected: 45,
		},
		{
			name: "municipal emergency purchase",
			// 80 -5 (municipal) -20 (emergency) -5 (<50K) = 50
			bid: &models.BidDescriptor{
				Modality:       models.ModalityDispensaEmergencia,
				Body:           models.IssuingBody{Name: "Prefeitura Municipal de Niteroi"},
				EstimatedValue: 30_000,
			},
			expected: 50,
		},
		{
			name: "high-risk keywords stack",
			// 80 -10 (sla) -10 (24x7) +5 (subcontracting) = 65
			bid: &models.BidDescriptor{
				ObjectDescription: "Sustentacao com SLA agressivo e operacao 24x7",
				AllowsSubcontract: true,
				EstimatedValue:    200_000,
			},
			expected: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Risk(tt.bid))
		})
	}
}

func TestCompetition(t *testing.T) {
	calc := newTestCalculator(t)
	profile := smallCompanyProfile()

	tests := []struct {
		name     string
		bid      *models.BidDescriptor
		profile  *models.CompanyProfile
		expected int
	}{
		{
			name: "small value, home state outside major markets, ME/EPP",
			// 50 +15 (<300K) +10 (same state) +15 (BA not major) -10 (pregao) +15 (benefit) = 95
			bid:      favorableBid(),
			profile:  profile,
			expected: 95,
		},
		{
			name: "big concorrencia in a major market, late discovery",
			// 50 -15 (>=1M) +10 (<7d to opening) = 45
			bid:      adverseBid(),
			profile:  profile,
			expected: 45,
		},
		{
			name: "invitation-only in a small market maxes out",
			// 50 +25 (<100K) +30 (convite) +10 (same state) +15 (TO not major) = 130 -> 100
			bid: &models.BidDescriptor{
				EstimatedValue: 80_000,
				Modality:       models.ModalityConvite,
				Body:           models.IssuingBody{Name: "Tribunal de Justica", State: "TO"},
			},
			profile: &models.CompanyProfile{State: "TO"},
			expected: 100,
		},
		{
			name: "specialized object thins the field",
			// 50 +25 (<100K) +16 (2 specialization keywords) = 91
			bid: &models.BidDescriptor{
				EstimatedValue:    90_000,
				ObjectDescription: "Solucao de biometria com geoprocessamento",
			},
			profile:  nil,
			expected: 91,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Competition(tt.bid, tt.profile, testNow))
		})
	}
}

func TestEvaluate_ScenarioA(t *testing.T) {
	calc := newTestCalculator(t)
	scores := calc.Evaluate(favorableBid(), smallCompanyProfile(), testNow)

	expected := models.ScoreSet{
		Financial:   100,
		Technical:   95,
		Documentary: 85,
		Timeline:    90,
		Risk:        80,
		Competition: 95,
		Final:       92, // .25*100 + .20*95 + .15*(85+90+80) + .10*95 = 91.75
	}
	assert.Equal(t, expected, scores)
	assert.GreaterOrEqual(t, scores.Risk, 80)
}

func TestEvaluate_ScenarioB(t *testing.T) {
	calc := newTestCalculator(t)
	scores := calc.Evaluate(adverseBid(), smallCompanyProfile(), testNow)

	expected := models.ScoreSet{
		Financial:   65,
		Technical:   55,
		Documentary: 40,
		Timeline:    15,
		Risk:        45,
		Competition: 45,
		Final:       47,
	}
	assert.Equal(t, expected, scores)
}

func TestEvaluate_Deterministic(t *testing.T) {
	calc := newTestCalculator(t)
	bid := adverseBid()
	profile := smallCompanyProfile()

	first := calc.Evaluate(bid, profile, testNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, calc.Evaluate(bid, profile, testNow))
	}
}

func TestEvaluate_AllScoresInRange(t *testing.T) {
	calc := newTestCalculator(t)

	bids := []*models.BidDescriptor{
		{}, // everything absent
		favorableBid(),
		adverseBid(),
		{
			EstimatedValue:    50_000_000,
			Modality:          models.ModalityDispensaEmergencia,
			Body:              models.IssuingBody{Name: "Prefeitura Municipal", State: "SP"},
			ObjectDescription: "operacao 24x7 com sla e multa por atraso em missao critica",
			AllowsConsortium:  true,
			ExecutionDays:     10,
			OpeningDate:       testNow.AddDate(0, 0, 1),
		},
	}
	profiles := []*models.CompanyProfile{nil, {}, smallCompanyProfile()}

	for _, bid := range bids {
		for _, profile := range profiles {
			scores := calc.Evaluate(bid, profile, testNow)
			for _, d := range models.Dimensions {
				v := scores.Get(d)
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 100)
			}
			assert.GreaterOrEqual(t, scores.Final, 0)
			assert.LessOrEqual(t, scores.Final, 100)
		}
	}
}
