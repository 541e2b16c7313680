// internal/models/bid.go
package models

import "time"

// Modality identifies the procurement procedure type of an edital.
// Each modality carries different participation rules and risk profiles.
type Modality string

const (
	ModalityPregaoEletronico   Modality = "pregao-eletronico"
	ModalityPregaoPresencial   Modality = "pregao-presencial"
	ModalityConcorrencia       Modality = "concorrencia"
	ModalityTomadaDePrecos     Modality = "tomada-de-precos"
	ModalityConvite            Modality = "convite"
	ModalityRegistroDePrecos   Modality = "registro-de-precos"
	ModalityDispensaEmergencia Modality = "dispensa-emergencial"
)

// IsAuction reports whether the modality is an auction-style procedure (pregao).
func (m Modality) IsAuction() bool {
	return m == ModalityPregaoEletronico || m == ModalityPregaoPresencial
}

// IssuingBody is the government entity that published the bid.
type IssuingBody struct {
	Name  string `json:"name"`
	State string `json:"state"`
	CNPJ  string `json:"cnpj"`
}

// QualificationRequirements groups the habilitation requirement lists of a bid.
type QualificationRequirements struct {
	Technical []string `json:"technical"`
	Economic  []string `json:"economic"`
	Legal     []string `json:"legal"`
}

// BidDescriptor is the structured representation of an edital as produced by
// the ingestion pipeline. It is an immutable input to the analysis engine:
// workers read it, never mutate it. Zero values mean "field absent" and the
// engine treats them as contributing no score adjustment.
type BidDescriptor struct {
	ID                string                    `json:"id"`
	Number            string                    `json:"number"`
	Modality          Modality                  `json:"modality"`
	JudgingCriterion  string                    `json:"judgingCriterion"`
	Body              IssuingBody               `json:"body"`
	ObjectDescription string                    `json:"objectDescription"`
	EstimatedValue    float64                   `json:"estimatedValue"`
	OpeningDate       time.Time                 `json:"openingDate"`
	QuestionDeadline  time.Time                 `json:"questionDeadline,omitempty"`
	ChallengeDeadline time.Time                 `json:"challengeDeadline,omitempty"`
	ExecutionDays     int                       `json:"executionDays"`
	ValidityMonths    int                       `json:"validityMonths"`
	PaymentTermDays   int                       `json:"paymentTermDays"`
	AllowsSubcontract bool                      `json:"allowsSubcontracting"`
	AllowsConsortium  bool                      `json:"allowsConsortium"`
	SmallBizBenefit   bool                      `json:"smallBusinessBenefit"`
	RequiredDocuments []string                  `json:"requiredDocuments"`
	Qualification     QualificationRequirements `json:"qualification"`
}

// DaysUntilOpening returns whole days between now and the opening session.
// Negative when the session already happened, zero when the date is unset.
func (b *BidDescriptor) DaysUntilOpening(now time.Time) int {
	if b.OpeningDate.IsZero() {
		return 0
	}
	return int(b.OpeningDate.Sub(now).Hours() / 24)
}
