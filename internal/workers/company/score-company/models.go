// internal/workers/company/score-company/models.go
package scorecompany

import "edagent-workers/internal/models"

type Input struct {
	CompanyID          string                 `json:"companyId"`
	Company            *models.CompanyProfile `json:"company,omitempty"`
	CompetencyMatchPct float64                `json:"competencyMatchPct"`
}

type Output struct {
	CompanyID string  `json:"companyId"`
	Scoring   float64 `json:"scoring"`
}
