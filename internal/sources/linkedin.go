// internal/sources/linkedin.go
package sources

import (
	"context"
	"fmt"
	"time"

	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/models"
)

// LinkedInSource returns canned vacancies. The real LinkedIn API needs
// OAuth and enterprise access, so this source stands in with generated
// items until that integration exists.
type LinkedInSource struct {
	items  int
	logger logger.Logger
}

func NewLinkedInSource(items int, log logger.Logger) *LinkedInSource {
	return &LinkedInSource{
		items:  items,
		logger: log.WithFields(map[string]interface{}{"source": models.SourceLinkedIn}),
	}
}

func (s *LinkedInSource) Name() string {
	return models.SourceLinkedIn
}

func (s *LinkedInSource) Fetch(ctx context.Context, query string) []models.Vacancy {
	now := time.Now().UTC().Format(time.RFC3339)

	vacancies := make([]models.Vacancy, 0, s.items)
	for i := 0; i < s.items; i++ {
		vacancies = append(vacancies, models.Vacancy{
			ID:         fmt.Sprintf("linkedin_%d", i),
			Title:      fmt.Sprintf("%s - Position %d", query, i),
			Company:    fmt.Sprintf("Tech Company %d", i),
			Source:     models.SourceLinkedIn,
			PostedDate: now,
		})
	}

	s.logger.Info("returning canned vacancies", map[string]interface{}{
		"query": query,
		"count": len(vacancies),
	})
	return vacancies
}
