// internal/workers/outreach/send-communication/handler.go
package sendcommunication

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-communication"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	db        *sql.DB
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Handler{
		config:    config,
		db:        db,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
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
		h.failJob(client, job, "COMMUNICATION_SEND_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	subject := fmt.Sprintf("Partnership Opportunity: %s Program - %s", h.config.ProgramName, input.CompanyName)

	messageID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	emailSent := false
	if h.config.EmailEnabled && input.Email != "" {
		if err := h.sendEmail(ctx, input.Email, subject, input.Letter); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"email": input.Email,
			})
			h.recordAttempt(ctx, messageID, input, "email", StatusFailed, sentAt)
			return &Output{MessageID: messageID, Status: StatusFailed, Email: input.Email, SentAt: sentAt}, nil
		}
		emailSent = true
	}

	smsSent := false
	if h.config.SMSEnabled && h.config.OwnerPhone != "" && h.isNudgeStage(input.Stage) {
		nudge := fmt.Sprintf("Outreach stage %d reached for %s. Time to call %s.",
			input.Stage, input.CompanyName, input.Recipient)
		if err := h.sendSMS(ctx, h.config.OwnerPhone, nudge); err != nil {
			h.logger.Error("SMS nudge failed", map[string]interface{}{
				"error": err,
				"phone": h.config.OwnerPhone,
			})
		} else {
			smsSent = true
		}
	}

	status := StatusDisabled
	if emailSent {
		status = StatusSent
	}

	h.recordAttempt(ctx, messageID, input, "email", status, sentAt)

	h.logger.Info("communication processed", map[string]interface{}{
		"messageId": messageID,
		"status":    status,
		"smsSent":   smsSent,
	})

	return &Output{
		MessageID: messageID,
		Status:    status,
		Email:     input.Email,
		SMSSent:   smsSent,
		SentAt:    sentAt,
	}, nil
}

func (h *Handler) isNudgeStage(stage int) bool {
	for _, s := range h.config.NudgeStages {
		if s == stage {
			return true
		}
	}
	return false
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

// recordAttempt writes the audit row; failures are logged, never fatal.
func (h *Handler) recordAttempt(ctx context.Context, messageID string, input *Input, channel, status, sentAt string) {
	if h.db == nil {
		return
	}
	entry := models.CommunicationLog{
		MessageID:   messageID,
		CompanyName: input.CompanyName,
		Recipient:   input.Recipient,
		Email:       input.Email,
		Channel:     channel,
		Status:      status,
		SentAt:      sentAt,
	}
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO communications_log (message_id, company_name, recipient, email, channel, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.MessageID, entry.CompanyName, entry.Recipient, entry.Email, entry.Channel, entry.Status, entry.SentAt)
	if err != nil {
		h.logger.Warn("failed to record communication", map[string]interface{}{
			"messageId": messageID,
			"error":     err,
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
