// internal/models/company.go
package models

// CompanySize is the legal size tier of the bidding company. Micro and small
// tiers qualify for ME/EPP procedural benefits in Brazilian public bids.
type CompanySize string

const (
	SizeMicro  CompanySize = "micro"
	SizeSmall  CompanySize = "small"
	SizeMedium CompanySize = "medium"
	SizeLarge  CompanySize = "large"
)

// QualifiesForSmallBizBenefit reports whether the tier is covered by ME/EPP rules.
func (s CompanySize) QualifiesForSmallBizBenefit() bool {
	return s == SizeMicro || s == SizeSmall
}

// CompanyProfile describes the bidding company. Immutable input to an
// evaluation, supplied by the company-profile collaborator.
type CompanyProfile struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Size               CompanySize `json:"size"`
	TaxRegime          string      `json:"taxRegime"`
	AnnualRevenue      float64     `json:"annualRevenue"`
	State              string      `json:"state"`
	ExpertiseAreas     []string    `json:"expertiseAreas"`
	Technologies       []string    `json:"technologies"`
	ConcurrentCapacity int         `json:"concurrentCapacity"`
}
