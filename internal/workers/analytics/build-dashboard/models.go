// internal/workers/analytics/build-dashboard/models.go
package builddashboard

type Input struct {
	RequestedBy string `json:"requestedBy,omitempty"`
}

type Metrics struct {
	TotalVacanciesAnalyzed int64   `json:"totalVacanciesAnalyzed"`
	TotalCompetencies      int     `json:"totalCompetencies"`
	TotalCompanies         int     `json:"totalCompanies"`
	TopAverageScore        float64 `json:"topAverageScore"`
	EmailsSent             int     `json:"emailsSent"`
	ResponseRate           float64 `json:"responseRate"`
}

type KPI struct {
	Target  interface{} `json:"target"`
	Current interface{} `json:"current"`
	Status  string      `json:"status"`
}

type Output struct {
	Status    string         `json:"status"`
	Metrics   Metrics        `json:"metrics"`
	KPIs      map[string]KPI `json:"kpis"`
	Timestamp string         `json:"timestamp"`
}
