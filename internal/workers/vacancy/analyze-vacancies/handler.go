// internal/workers/vacancy/analyze-vacancies/handler.go
package analyzevacancies

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"edagent-workers/internal/common/database"
	"edagent-workers/internal/common/errors"
	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/matching"
	"edagent-workers/internal/models"
	"edagent-workers/internal/pipeline"
	"edagent-workers/internal/sources"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-vacancies"
)

const (
	demandKeyPrefix  = "competency:demand:"
	totalAnalyzedKey = "vacancies:analyzed:total"
)

// Metrics receives per-source fetch counts, nil disables recording.
type Metrics interface {
	RecordVacanciesFetched(ctx context.Context, source string, count int)
}

type Handler struct {
	config  *Config
	sources []sources.VacancySource
	es      *database.ElasticsearchClient
	redis   *database.RedisClient
	metrics Metrics
	logger  logger.Logger
}

func NewHandler(config *Config, srcs []sources.VacancySource, es *database.ElasticsearchClient, redisClient *database.RedisClient, metrics Metrics, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		sources: srcs,
		es:      es,
		redis:   redisClient,
		metrics: metrics,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "ANALYZE_VACANCIES_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := input.Query
	if query == "" {
		query = h.config.DefaultQuery
	}

	perSource := make(map[string]int, len(h.sources))
	total := 0
	var sample []models.Vacancy

	for _, src := range h.sources {
		fetched := src.Fetch(ctx, query)
		perSource[src.Name()] = len(fetched)
		total += len(fetched)
		if h.metrics != nil {
			h.metrics.RecordVacanciesFetched(ctx, src.Name(), len(fetched))
		}

		h.indexVacancies(ctx, fetched)

		// Extraction runs over a bounded sample of real descriptions;
		// canned sources carry no description text worth scanning.
		if src.Name() == models.SourceHH {
			sample = fetched
			if len(sample) > h.config.SampleSize {
				sample = sample[:h.config.SampleSize]
			}
		}
	}

	competencies := pipeline.AggregateCompetencies(sample)
	h.bumpDemandCounters(ctx, sample)
	h.bumpAnalyzedTotal(ctx, total)

	h.logger.Info("vacancy analysis complete", map[string]interface{}{
		"industry":     input.Industry,
		"query":        query,
		"total":        total,
		"competencies": competencies,
	})

	return &Output{
		Status:            "success",
		TotalVacancies:    total,
		Sources:           perSource,
		CompetenciesFound: competencies,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) indexVacancies(ctx context.Context, vacancies []models.Vacancy) {
	if h.es == nil {
		return
	}
	for _, v := range vacancies {
		docID := v.Source + ":" + v.ID
		if err := h.es.IndexJSON(ctx, docID, v); err != nil {
			idxErr := errors.NewIndexWriteFailedError(h.es.Index, err)
			h.logger.Warn("failed to index vacancy", map[string]interface{}{
				"docId": docID,
				"error": idxErr,
			})
		}
	}
}

// bumpDemandCounters counts, per competency, how many sampled vacancies
// mention it. The dashboard reads these counters back.
func (h *Handler) bumpDemandCounters(ctx context.Context, sample []models.Vacancy) {
	if h.redis == nil {
		return
	}

	counts := make(map[string]int64)
	for _, v := range sample {
		for _, label := range matching.Extract(v.Description) {
			counts[label]++
		}
	}

	for label, n := range counts {
		if _, err := h.redis.IncrBy(ctx, demandKeyPrefix+label, n); err != nil {
			h.logger.Warn("failed to bump demand counter", map[string]interface{}{
				"competency": label,
				"error":      err,
			})
		}
	}
}

func (h *Handler) bumpAnalyzedTotal(ctx context.Context, total int) {
	if h.redis == nil || total == 0 {
		return
	}
	if _, err := h.redis.IncrBy(ctx, totalAnalyzedKey, int64(total)); err != nil {
		h.logger.Warn("failed to bump analyzed total", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
