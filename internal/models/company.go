// internal/models/company.go
package models

// CompanyProfile is a candidate partner company. Scoring is always
// recomputed from the four scoring inputs, never set directly.
type CompanyProfile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Employees     int      `json:"employees"`
	TechStack     []string `json:"techStack"`
	Funding       string   `json:"funding"`
	Website       string   `json:"website"`
	LinkedInURL   string   `json:"linkedinUrl"`
	Scoring       float64  `json:"scoring"`
	DecisionMaker string   `json:"decisionMaker"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
}
