// internal/models/analysis.go
package models

import "time"

// ScoreSet holds the six viability sub-scores plus the weighted final score.
// Every field is clamped to [0,100] by the scoring engine before it leaves
// the calculator, so downstream consumers can rely on the range.
type ScoreSet struct {
	Financial   int `json:"financial"`
	Technical   int `json:"technical"`
	Documentary int `json:"documentary"`
	Timeline    int `json:"timeline"`
	Risk        int `json:"risk"`
	Competition int `json:"competition"`
	Final       int `json:"final"`
}

// Dimension names a sub-score axis. The canonical order below is the
// tie-break and iteration order everywhere scores are ranked or reported.
type Dimension string

const (
	DimFinancial   Dimension = "financial"
	DimTechnical   Dimension = "technical"
	DimDocumentary Dimension = "documentary"
	DimTimeline    Dimension = "timeline"
	DimRisk        Dimension = "risk"
	DimCompetition Dimension = "competition"
)

// Dimensions lists the sub-score axes in canonical order.
var Dimensions = []Dimension{
	DimFinancial, DimTechnical, DimDocumentary, DimTimeline, DimRisk, DimCompetition,
}

// Get returns the sub-score for a dimension.
func (s ScoreSet) Get(d Dimension) int {
	switch d {
	case DimFinancial:
		return s.Financial
	case DimTechnical:
		return s.Technical
	case DimDocumentary:
		return s.Documentary
	case DimTimeline:
		return s.Timeline
	case DimRisk:
		return s.Risk
	case DimCompetition:
		return s.Competition
	}
	return 0
}

// Outcome is the terminal decision for a bid evaluation.
type Outcome string

const (
	OutcomeParticipate    Outcome = "participate"
	OutcomeAnalyzeFurther Outcome = "analyze-further"
	OutcomeDecline        Outcome = "decline"
)

// FactorPolarity marks a decisive factor as helping or hurting the decision.
type FactorPolarity string

const (
	PolarityPositive FactorPolarity = "positive"
	PolarityNegative FactorPolarity = "negative"
)

// DecisiveFactor is a sub-score extreme enough to drive the decision:
// >= 80 positive, <= 40 negative.
type DecisiveFactor struct {
	Name     Dimension      `json:"name"`
	Polarity FactorPolarity `json:"polarity"`
	Score    int            `json:"score"`
}

// Decision is the participate/analyze/decline verdict with its confidence
// and the factors that dominated it.
type Decision struct {
	Outcome         Outcome          `json:"outcome"`
	Confidence      int              `json:"confidence"`
	Justification   string           `json:"justification"`
	DecisiveFactors []DecisiveFactor `json:"decisiveFactors"`
}

// PricingStrategy is the suggested commercial posture for the proposal.
type PricingStrategy struct {
	Label          string  `json:"label"`
	MarginPercent  float64 `json:"marginPercent"`
	SuggestedPrice float64 `json:"suggestedPrice"`
}

// PartnershipPlan flags whether the company should seek partners and which kinds.
type PartnershipPlan struct {
	Needed            bool     `json:"needed"`
	Types             []string `json:"types"`
	SelectionCriteria []string `json:"selectionCriteria"`
}

// Milestone is one step of the preparation schedule up to the opening session.
type Milestone struct {
	Activity     string    `json:"activity"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	DurationDays int       `json:"durationDays"`
}

// CostBreakdown splits the estimated cost into its major components.
type CostBreakdown struct {
	Execution      float64 `json:"execution"`
	Team           float64 `json:"team"`
	Administrative float64 `json:"administrative"`
}

// ROIEstimate is the return projection for winning the bid at the suggested cost.
type ROIEstimate struct {
	Percent        float64       `json:"percent"`
	AbsoluteReturn float64       `json:"absoluteReturn"`
	PaybackMonths  int           `json:"paybackMonths"`
	EstimatedCost  float64       `json:"estimatedCost"`
	CostBreakdown  CostBreakdown `json:"costBreakdown"`
}

// StrategicRecommendation wraps the decision and scores with the full
// participation strategy. All fields are computed once per evaluation and
// immutable thereafter.
type StrategicRecommendation struct {
	Decision              Decision        `json:"decision"`
	Scores                ScoreSet        `json:"scores"`
	Strategy              string          `json:"strategy"`
	CompetitiveAdvantages []string        `json:"competitiveAdvantages"`
	ImmediateActions      []string        `json:"immediateActions"`
	PreparationActions    []string        `json:"preparationActions"`
	PostDecisionActions   []string        `json:"postDecisionActions"`
	Pricing               PricingStrategy `json:"pricing"`
	Partnership           PartnershipPlan `json:"partnership"`
	Schedule              []Milestone     `json:"schedule"`
	ROI                   ROIEstimate     `json:"roi"`
	Priority              string          `json:"priority"`
}

// AnalysisRecord is the persistence shape handed to the storage collaborator.
// The narrative field is filled by the LLM-backed service, not the engine.
type AnalysisRecord struct {
	AnalysisID     string                   `json:"analysisId"`
	BidID          string                   `json:"bidId"`
	CompanyID      string                   `json:"companyId"`
	Scores         ScoreSet                 `json:"scores"`
	Decision       *Decision                `json:"decision,omitempty"`
	Recommendation *StrategicRecommendation `json:"recommendation,omitempty"`
	Narrative      string                   `json:"narrative,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// OverallScore returns the record's headline score. When no explicit final
// score was computed it falls back to the average of the non-zero sub-scores,
// which is what the storage layer has always persisted for partial analyses.
func (r *AnalysisRecord) OverallScore() int {
	if r.Scores.Final != 0 {
		return r.Scores.Final
	}
	sum, n := 0, 0
	for _, d := range Dimensions {
		if v := r.Scores.Get(d); v != 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}
