// internal/workers/company/search-companies/models.go
package searchcompanies

import "edagent-workers/internal/models"

type Input struct {
	Industry string   `json:"industry"`
	Location string   `json:"location,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Demanded []string `json:"competenciesFound,omitempty"`
	// Ranked defaults to true when absent; pass false to keep storage order.
	Ranked *bool `json:"ranked,omitempty"`
}

type Output struct {
	Status         string                  `json:"status"`
	TotalCompanies int                     `json:"totalCompanies"`
	Industry       string                  `json:"industry"`
	Location       string                  `json:"location"`
	Companies      []models.CompanyProfile `json:"companies"`
	Timestamp      string                  `json:"timestamp"`
}
