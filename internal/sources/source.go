// internal/sources/source.go
package sources

import (
	"context"

	"edagent-workers/internal/models"
)

// VacancySource pulls vacancies from one job board. Implementations
// swallow upstream failures, log them and return an empty slice; the
// pipeline only ever sees degraded input, never an error.
type VacancySource interface {
	Name() string
	Fetch(ctx context.Context, query string) []models.Vacancy
}
