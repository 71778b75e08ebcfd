// internal/workers/company/search-companies/handler.go
package searchcompanies

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/models"
	"edagent-workers/internal/pipeline"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-companies"
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		h.failJob(client, job, "SEARCH_COMPANIES_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	location := input.Location
	if location == "" {
		location = h.config.DefaultLocation
	}
	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}
	ranked := true
	if input.Ranked != nil {
		ranked = *input.Ranked
	}

	companies, err := h.loadCompanies(ctx, location, limit)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}

	companies = pipeline.Decorate(companies, input.Demanded, ranked)

	h.logger.Info("company search complete", map[string]interface{}{
		"industry": input.Industry,
		"location": location,
		"count":    len(companies),
		"ranked":   ranked,
	})

	return &Output{
		Status:         "success",
		TotalCompanies: len(companies),
		Industry:       input.Industry,
		Location:       location,
		Companies:      companies,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) loadCompanies(ctx context.Context, location string, limit int) ([]models.CompanyProfile, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, name, city, employees, tech_stack, funding, website, linkedin_url, decision_maker, email, phone
		FROM companies WHERE city = $1 ORDER BY id LIMIT $2`, location, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]models.CompanyProfile, 0, limit)
	for rows.Next() {
		var profile models.CompanyProfile
		var techStack []byte
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.City, &profile.Employees,
			&techStack, &profile.Funding, &profile.Website, &profile.LinkedInURL,
			&profile.DecisionMaker, &profile.Email, &profile.Phone); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(techStack, &profile.TechStack); err != nil {
			profile.TechStack = []string{}
		}
		companies = append(companies, profile)
	}
	return companies, rows.Err()
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
