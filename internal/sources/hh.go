// internal/sources/hh.go
package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"edagent-workers/internal/common/config"
	"edagent-workers/internal/common/errors"
	commonhttp "edagent-workers/internal/common/http"
	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/models"
)

// HHClient fetches vacancies from the HH.ru public search API.
type HHClient struct {
	baseURL string
	area    int
	perPage int
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewHHClient(cfg config.SourcesConfig, client *commonhttp.Client, log logger.Logger) *HHClient {
	return &HHClient{
		baseURL: cfg.HH.BaseURL,
		area:    cfg.HH.Area,
		perPage: cfg.HH.PerPage,
		client:  client,
		logger:  log.WithFields(map[string]interface{}{"source": models.SourceHH}),
	}
}

func (c *HHClient) Name() string {
	return models.SourceHH
}

// hhSearchResponse mirrors the fields of GET /vacancies we consume.
type hhSearchResponse struct {
	Items []hhVacancy `json:"items"`
	Found int         `json:"found"`
	Pages int         `json:"pages"`
}

type hhVacancy struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Employer struct {
		Name string `json:"name"`
	} `json:"employer"`
	Snippet struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
	AlternateURL string `json:"alternate_url"`
	PublishedAt  string `json:"published_at"`
}

// Fetch searches HH.ru for the query. Upstream failures are logged and
// degrade to an empty result.
func (c *HHClient) Fetch(ctx context.Context, query string) []models.Vacancy {
	params := url.Values{}
	params.Set("text", query)
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("area", strconv.Itoa(c.area))

	endpoint := fmt.Sprintf("%s/vacancies?%s", c.baseURL, params.Encode())

	var resp hhSearchResponse
	if err := c.client.GetJSON(ctx, endpoint, &resp); err != nil {
		srcErr := errors.NewSourceFetchFailedError(models.SourceHH, err)
		c.logger.Warn("hh.ru fetch failed", map[string]interface{}{
			"query": query,
			"error": srcErr,
		})
		return []models.Vacancy{}
	}

	vacancies := make([]models.Vacancy, 0, len(resp.Items))
	for _, item := range resp.Items {
		vacancies = append(vacancies, models.Vacancy{
			ID:          item.ID,
			Title:       item.Name,
			Company:     item.Employer.Name,
			Description: joinSnippet(item.Snippet.Requirement, item.Snippet.Responsibility),
			Source:      models.SourceHH,
			Link:        item.AlternateURL,
			PostedDate:  item.PublishedAt,
		})
	}

	c.logger.Info("fetched vacancies from hh.ru", map[string]interface{}{
		"query": query,
		"count": len(vacancies),
	})
	return vacancies
}

func joinSnippet(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
