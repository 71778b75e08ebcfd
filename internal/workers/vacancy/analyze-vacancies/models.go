// internal/workers/vacancy/analyze-vacancies/models.go
package analyzevacancies

type Input struct {
	Industry string `json:"industry"`
	Query    string `json:"query,omitempty"`
}

type Output struct {
	Status            string         `json:"status"`
	TotalVacancies    int            `json:"totalVacancies"`
	Sources           map[string]int `json:"sources"`
	CompetenciesFound []string       `json:"competenciesFound"`
	Timestamp         string         `json:"timestamp"`
}
