// internal/workers/outreach/generate-communication/handler.go
package generatecommunication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/models"
	"edagent-workers/internal/outreach"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "generate-communication"
)

var (
	ErrInvalidInput = errors.New("COMMUNICATION_INVALID")
)

// inputSchema guards the identity and contact fields the letters and
// the plan are keyed on.
const inputSchema = `{
	"type": "object",
	"required": ["companyId", "companyName", "recipient", "email"],
	"properties": {
		"companyId":   {"type": "string", "minLength": 1},
		"companyName": {"type": "string", "minLength": 1},
		"recipient":   {"type": "string", "minLength": 1},
		"email":       {"type": "string", "minLength": 3, "pattern": "@"},
		"techStack":   {"type": "string"},
		"style":       {"type": "string"}
	}
}`

// Metrics counts generated letters per tone, nil disables recording.
type Metrics interface {
	RecordLetterGenerated(ctx context.Context, tone string)
}

type Handler struct {
	config  *Config
	metrics Metrics
	logger  logger.Logger
}

func NewHandler(config *Config, metrics Metrics, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
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
		code := "GENERATE_COMMUNICATION_FAILED"
		if errors.Is(err, ErrInvalidInput) {
			code = "COMMUNICATION_INVALID"
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.validateInput(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tone := outreach.ParseTone(input.Style)

	profile := models.CompanyProfile{
		ID:            input.CompanyID,
		Name:          input.CompanyName,
		DecisionMaker: input.Recipient,
		Email:         input.Email,
		TechStack:     splitTechStack(input.TechStack),
	}

	// Both letters are always rendered; the caller picks by tone.
	letterFormal := outreach.RenderStageContent(profile, outreach.ToneFormal)
	letterCasual := outreach.RenderStageContent(profile, outreach.ToneCasual)

	plan := outreach.BuildPlan(profile)

	if h.metrics != nil {
		h.metrics.RecordLetterGenerated(ctx, string(tone))
	}

	h.logger.Info("communication generated", map[string]interface{}{
		"companyId": input.CompanyID,
		"tone":      string(tone),
		"planId":    plan.ID,
	})

	return &Output{
		Status:            "success",
		CompanyID:         input.CompanyID,
		CompanyName:       input.CompanyName,
		SelectedTone:      string(tone),
		LetterFormal:      letterFormal.Body,
		LetterCasual:      letterCasual.Body,
		PlanID:            plan.ID,
		CommunicationPlan: plan.Stages,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// splitTechStack turns the caller's comma-separated stack into entries.
func splitTechStack(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *Handler) validateInput(input *Input) error {
	schemaLoader := gojsonschema.NewStringLoader(inputSchema)
	documentLoader := gojsonschema.NewGoLoader(input)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed: %v", errs)
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
