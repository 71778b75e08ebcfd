// internal/workers/company/search-companies/handler_test.go
package searchcompanies

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"edagent-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		DefaultLocation: "Moscow",
		DefaultLimit:    100,
		Timeout:         10 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func companyColumns() []string {
	return []string{
		"id", "name", "city", "employees", "tech_stack", "funding",
		"website", "linkedin_url", "decision_maker", "email", "phone",
	}
}

func companyRow(rows *sqlmock.Rows, id, name string, employees int, stack []string, funding string) *sqlmock.Rows {
	data, _ := json.Marshal(stack)
	return rows.AddRow(id, name, "Moscow", employees, data, funding, "", "", "CTO", "cto@"+id+".ru", "")
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

func TestHandler_Execute_RankedSearch(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(companyColumns())
	companyRow(rows, "company_1", "Low Fit", 5, []string{"PHP"}, "")
	companyRow(rows, "company_2", "High Fit", 1000, []string{"Python", "Go", "Kubernetes"}, "Series B")

	mock.ExpectQuery("SELECT id, name, city").
		WithArgs("Moscow", 100).
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "IT Services",
		Demanded: []string{"Python", "Kubernetes"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", output.Status)
	assert.Equal(t, 2, output.TotalCompanies)
	assert.Equal(t, "Moscow", output.Location)

	// High-fit company ranks first with a freshly computed score.
	assert.Equal(t, "company_2", output.Companies[0].ID)
	// 3/5*40 + 20 + 100*0.3 + 10 = 84
	assert.InDelta(t, 84.0, output.Companies[0].Scoring, 0.0001)
	assert.Equal(t, "company_1", output.Companies[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_UnrankedKeepsStorageOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(companyColumns())
	companyRow(rows, "company_1", "Low Fit", 5, []string{"PHP"}, "")
	companyRow(rows, "company_2", "High Fit", 1000, []string{"Python"}, "Seed")

	mock.ExpectQuery("SELECT id, name, city").
		WithArgs("Moscow", 100).
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	unranked := false
	output, err := handler.Execute(context.Background(), &Input{
		Demanded: []string{"Python"},
		Ranked:   &unranked,
	})

	assert.NoError(t, err)
	assert.Equal(t, "company_1", output.Companies[0].ID)
	assert.Equal(t, "company_2", output.Companies[1].ID)
}

func TestHandler_Execute_LocationAndLimitOverrides(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, city").
		WithArgs("Berlin", 10).
		WillReturnRows(sqlmock.NewRows(companyColumns()))

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Location: "Berlin",
		Limit:    10,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Berlin", output.Location)
	assert.Equal(t, 0, output.TotalCompanies)
	assert.NotNil(t, output.Companies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_QueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, city").
		WillReturnError(sql.ErrConnDone)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_Execute_MalformedTechStackDegrades(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(companyColumns()).
		AddRow("company_1", "Broken", "Moscow", 1000, []byte("not-json"), "Seed", "", "", "CTO", "cto@x.ru", "")

	mock.ExpectQuery("SELECT id, name, city").
		WithArgs("Moscow", 100).
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Demanded: []string{"Python"}})

	assert.NoError(t, err)
	assert.Equal(t, []string{}, output.Companies[0].TechStack)
	// Bracket points and funding bonus still apply: 20 + 10 = 30.
	assert.InDelta(t, 30.0, output.Companies[0].Scoring, 0.0001)
}
