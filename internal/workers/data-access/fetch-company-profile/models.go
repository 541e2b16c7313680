// internal/workers/data-access/fetch-company-profile/models.go
package fetchcompanyprofile

import "edital-workers/internal/models"

type Input struct {
	CompanyID string `json:"companyId"`
}

type Output struct {
	Profile *models.CompanyProfile `json:"companyProfile"`
}
