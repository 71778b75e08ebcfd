// internal/models/vacancy.go
package models

// Vacancy source tags.
const (
	SourceHH       = "HH"
	SourceSuperjob = "Superjob"
	SourceLinkedIn = "LinkedIn"
)

// Vacancy is a job posting pulled from one of the job boards. Immutable
// after ingestion; extracted competencies are derived on demand, not
// stored on the entity.
type Vacancy struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	PostedDate  string `json:"postedDate"`
}

// CompetencyStat is the derived demand view of a single competency label
// used by the analytics dashboard.
type CompetencyStat struct {
	Name               string  `json:"name"`
	DemandLevel        float64 `json:"demandLevel"`
	IndustryPercentage float64 `json:"industryPercentage"`
	ProgramCoverage    bool    `json:"programCoverage"`
	Priority           string  `json:"priority"`
}
