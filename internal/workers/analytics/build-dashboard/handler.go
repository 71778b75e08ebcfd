// internal/workers/analytics/build-dashboard/handler.go
package builddashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"edagent-workers/internal/common/database"
	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "build-dashboard"
)

const (
	demandKeyPrefix  = "competency:demand:"
	totalAnalyzedKey = "vacancies:analyzed:total"

	kpiStatusAchieved   = "achieved"
	kpiStatusInProgress = "in_progress"
	kpiStatusReady      = "ready"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *database.RedisClient
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *database.RedisClient, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "DASHBOARD_BUILD_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute aggregates pipeline metrics from PostgreSQL and the Redis demand
// counters. Unreachable stores degrade their metrics to zero rather than
// failing the whole dashboard.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	metrics := Metrics{
		TotalVacanciesAnalyzed: h.analyzedTotal(ctx),
		TotalCompetencies:      h.competenciesInDemand(ctx),
		TotalCompanies:         h.countRows(ctx, "SELECT COUNT(*) FROM companies"),
		TopAverageScore:        h.topAverageScore(ctx),
		EmailsSent:             h.emailsSent(ctx),
		ResponseRate:           h.config.ResponseRate,
	}

	kpis := map[string]KPI{
		"partner_pool": {
			Target:  h.config.PartnerPoolTarget,
			Current: metrics.TotalCompanies,
			Status:  h.progressStatus(float64(metrics.TotalCompanies) >= float64(h.config.PartnerPoolTarget)),
		},
		"top_10_score": {
			Target:  h.config.TopScoreTarget,
			Current: metrics.TopAverageScore,
			Status:  h.progressStatus(metrics.TopAverageScore >= h.config.TopScoreTarget),
		},
		"letter_personalization": {
			Target:  "100%",
			Current: "100%",
			Status:  kpiStatusReady,
		},
		"materials_ready": {
			Target:  "presentation+faq",
			Current: "all",
			Status:  kpiStatusReady,
		},
	}

	h.logger.Info("dashboard built", map[string]interface{}{
		"requestedBy":    input.RequestedBy,
		"totalCompanies": metrics.TotalCompanies,
		"emailsSent":     metrics.EmailsSent,
		"topScore":       metrics.TopAverageScore,
	})

	return &Output{
		Status:    "success",
		Metrics:   metrics,
		KPIs:      kpis,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) progressStatus(achieved bool) string {
	if achieved {
		return kpiStatusAchieved
	}
	return kpiStatusInProgress
}

func (h *Handler) countRows(ctx context.Context, query string, args ...interface{}) int {
	if h.db == nil {
		return 0
	}
	var count int
	if err := h.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		h.logger.Warn("count query failed", map[string]interface{}{
			"query": query,
			"error": err,
		})
		return 0
	}
	return count
}

func (h *Handler) emailsSent(ctx context.Context) int {
	return h.countRows(ctx, "SELECT COUNT(*) FROM communications_log WHERE status = $1", "sent")
}

// topAverageScore averages the TopN highest company scores, rounded to one
// decimal. Fewer than TopN companies average over what exists.
func (h *Handler) topAverageScore(ctx context.Context) float64 {
	if h.db == nil {
		return 0
	}

	rows, err := h.db.QueryContext(ctx,
		"SELECT scoring FROM companies ORDER BY scoring DESC LIMIT $1", h.config.TopN)
	if err != nil {
		h.logger.Warn("top score query failed", map[string]interface{}{
			"error": err,
		})
		return 0
	}
	defer rows.Close()

	sum := 0.0
	count := 0
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			h.logger.Warn("failed to scan score row", map[string]interface{}{
				"error": err,
			})
			return 0
		}
		sum += score
		count++
	}
	if err := rows.Err(); err != nil {
		h.logger.Warn("score rows iteration failed", map[string]interface{}{
			"error": err,
		})
		return 0
	}
	if count == 0 {
		return 0
	}

	return math.Round(sum/float64(count)*10) / 10
}

func (h *Handler) analyzedTotal(ctx context.Context) int64 {
	var total int64
	h.readCounter(ctx, totalAnalyzedKey, &total)
	return total
}

// competenciesInDemand counts vocabulary entries with a non-zero demand
// counter, i.e. competencies actually seen in sampled vacancies so far.
func (h *Handler) competenciesInDemand(ctx context.Context) int {
	if h.redis == nil {
		return 0
	}

	demanded := 0
	for _, label := range matching.Vocabulary() {
		var count int64
		if h.readCounter(ctx, demandKeyPrefix+label, &count) && count > 0 {
			demanded++
		}
	}
	return demanded
}

func (h *Handler) readCounter(ctx context.Context, key string, out *int64) bool {
	if h.redis == nil {
		return false
	}

	value, err := h.redis.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("failed to read counter", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
		return false
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		h.logger.Warn("counter is not numeric", map[string]interface{}{
			"key":   key,
			"value": value,
		})
		return false
	}

	*out = parsed
	return true
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
