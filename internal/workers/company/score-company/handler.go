// internal/workers/company/score-company/handler.go
package scorecompany

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/matching"
	"edagent-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "score-company"
)

var (
	ErrCompanyNotFound = errors.New("COMPANY_NOT_FOUND")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
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
		code := "SCORE_COMPANY_FAILED"
		if errors.Is(err, ErrCompanyNotFound) {
			code = "COMPANY_NOT_FOUND"
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var profile *models.CompanyProfile
	if input.Company != nil {
		profile = input.Company
	} else if input.CompanyID != "" {
		var err error
		profile, err = h.getCompanyProfile(ctx, input.CompanyID)
		if err != nil {
			h.logger.Warn("failed to load company profile", map[string]interface{}{
				"companyId": input.CompanyID,
				"error":     err,
			})
		}
	}

	if profile == nil {
		return nil, ErrCompanyNotFound
	}

	scoring := matching.Score(profile.TechStack, profile.Employees, input.CompetencyMatchPct, profile.Funding)

	companyID := profile.ID
	if companyID == "" {
		companyID = input.CompanyID
	}

	if companyID != "" && h.db != nil {
		if err := h.persistScore(ctx, companyID, scoring); err != nil {
			h.logger.Warn("failed to persist score", map[string]interface{}{
				"companyId": companyID,
				"error":     err,
			})
		}
	}

	h.logger.Info("company score calculated", map[string]interface{}{
		"companyId": companyID,
		"scoring":   scoring,
	})

	return &Output{
		CompanyID: companyID,
		Scoring:   scoring,
	}, nil
}

func (h *Handler) getCompanyProfile(ctx context.Context, companyID string) (*models.CompanyProfile, error) {
	cacheKey := "company:profile:" + companyID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var profile models.CompanyProfile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT name, city, employees, tech_stack, funding, website, linkedin_url, decision_maker, email, phone
		FROM companies WHERE id = $1`, companyID)

	profile := models.CompanyProfile{ID: companyID}
	var techStack []byte
	err := row.Scan(&profile.Name, &profile.City, &profile.Employees, &techStack,
		&profile.Funding, &profile.Website, &profile.LinkedInURL,
		&profile.DecisionMaker, &profile.Email, &profile.Phone)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(techStack, &profile.TechStack); err != nil {
		profile.TechStack = []string{}
	}

	if h.redis != nil {
		data, _ := json.Marshal(profile)
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}

	return &profile, nil
}

func (h *Handler) persistScore(ctx context.Context, companyID string, scoring float64) error {
	_, err := h.db.ExecContext(ctx, `UPDATE companies SET scoring = $1 WHERE id = $2`, scoring, companyID)
	if err != nil {
		return err
	}

	// Drop the cached profile so the next read sees the fresh score.
	if h.redis != nil {
		h.redis.Del(ctx, "company:profile:"+companyID)
	}
	return nil
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
