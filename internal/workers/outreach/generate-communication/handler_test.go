// internal/workers/outreach/generate-communication/handler_test.go
package generatecommunication

import (
	"context"
	"testing"
	"time"

	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/models"
	"edagent-workers/internal/outreach"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func validInput() *Input {
	return &Input{
		CompanyID:   "company_1",
		CompanyName: "Tech Company 1",
		Recipient:   "VP of Technology",
		Email:       "vp@company1.ru",
		TechStack:   "Python, Go, Kubernetes",
		Style:       "formal",
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger { return tl }
func (tl *testLogger) WithError(err error) logger.Logger                      { return tl }
func (tl *testLogger) With(fields map[string]interface{}) logger.Logger       { return tl }

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_GeneratesBothLettersAndPlan(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, "success", output.Status)
	assert.Equal(t, "company_1", output.CompanyID)
	assert.Equal(t, "formal", output.SelectedTone)

	assert.Contains(t, output.LetterFormal, "Dear VP of Technology,")
	assert.Contains(t, output.LetterFormal, "Python, Go, Kubernetes")
	assert.Contains(t, output.LetterCasual, "Hey VP of Technology!")
	assert.NotEqual(t, output.LetterFormal, output.LetterCasual)

	assert.Len(t, output.CommunicationPlan, 5)
	days := []int{1, 5, 10, 15, 20}
	for i, stage := range output.CommunicationPlan {
		assert.Equal(t, i+1, stage.Stage)
		assert.Equal(t, days[i], stage.Day)
	}
	assert.NotEmpty(t, output.PlanID)
}

func TestHandler_Execute_ToneSelection(t *testing.T) {
	tests := []struct {
		style    string
		expected string
	}{
		{"formal", "formal"},
		{"casual", "casual"},
		{"", "casual"},
		{"FORMAL", "casual"},
		{"CASUAL", "casual"},
	}

	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

	for _, tt := range tests {
		t.Run("style="+tt.style, func(t *testing.T) {
			input := validInput()
			input.Style = tt.style

			output, err := handler.Execute(context.Background(), input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, output.SelectedTone)
		})
	}
}

func TestHandler_Execute_PlanIDStableForCompany(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

	first, err := handler.Execute(context.Background(), validInput())
	assert.NoError(t, err)
	second, err := handler.Execute(context.Background(), validInput())
	assert.NoError(t, err)

	assert.Equal(t, first.PlanID, second.PlanID)

	other := validInput()
	other.CompanyID = "company_2"
	third, err := handler.Execute(context.Background(), other)
	assert.NoError(t, err)
	assert.NotEqual(t, first.PlanID, third.PlanID)
}

func TestHandler_Execute_LettersMatchStageRendering(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))
	input := validInput()

	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)

	profile := models.CompanyProfile{
		ID:            input.CompanyID,
		Name:          input.CompanyName,
		DecisionMaker: input.Recipient,
		Email:         input.Email,
		TechStack:     []string{"Python", "Go", "Kubernetes"},
	}

	assert.Equal(t, outreach.RenderStageContent(profile, outreach.ToneFormal).Body, output.LetterFormal)
	assert.Equal(t, outreach.RenderStageContent(profile, outreach.ToneCasual).Body, output.LetterCasual)
}

type fakeMetrics struct {
	tones []string
}

func (f *fakeMetrics) RecordLetterGenerated(ctx context.Context, tone string) {
	f.tones = append(f.tones, tone)
}

func TestHandler_Execute_RecordsLetterMetrics(t *testing.T) {
	metrics := &fakeMetrics{}
	handler := NewHandler(createTestConfig(), metrics, newTestLogger(t))

	_, err := handler.Execute(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, []string{"formal"}, metrics.tones)
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Execute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing company id", func(in *Input) { in.CompanyID = "" }},
		{"missing company name", func(in *Input) { in.CompanyName = "" }},
		{"missing recipient", func(in *Input) { in.Recipient = "" }},
		{"missing email", func(in *Input) { in.Email = "" }},
		{"email without at sign", func(in *Input) { in.Email = "not-an-email" }},
	}

	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			output, err := handler.Execute(context.Background(), input)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, output)
		})
	}
}

func TestHandler_Execute_EmptyTechStackAllowed(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, newTestLogger(t))

	input := validInput()
	input.TechStack = ""

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotEmpty(t, output.LetterFormal)
}
