// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edagent-workers/internal/common/config"
	"edagent-workers/internal/common/database"
	commonhttp "edagent-workers/internal/common/http"
	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/sources"

	builddashboard "edagent-workers/internal/workers/analytics/build-dashboard"
	scorecompany "edagent-workers/internal/workers/company/score-company"
	searchcompanies "edagent-workers/internal/workers/company/search-companies"
	generatecommunication "edagent-workers/internal/workers/outreach/generate-communication"
	sendcommunication "edagent-workers/internal/workers/outreach/send-communication"
	analyzevacancies "edagent-workers/internal/workers/vacancy/analyze-vacancies"
)

// Requires real PostgreSQL, Redis and Elasticsearch. Gate on E2E_TESTS=1.
func TestFullE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") != "1" {
		t.Skip("set E2E_TESTS=1 to run against real services")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	zapLog, _ := zap.NewProduction()
	log := logger.NewZapAdapter(zapLog)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}

	// --- 1. Service connectivity ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	defer pg.Close()
	require.NoError(t, pg.Ping(ctx), "❌ PostgreSQL ping failed")
	t.Log("✅ PostgreSQL connected")

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	defer redisClient.Close()
	require.NoError(t, redisClient.Ping(ctx), "❌ Redis ping failed")
	t.Log("✅ Redis connected")

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "❌ Elasticsearch client creation failed")
	require.NoError(t, esClient.Ping(ctx), "❌ Elasticsearch ping failed")
	t.Log("✅ Elasticsearch connected")

	// --- 2. Tables and seed data ---
	createTables(t, pg)
	seedCompanies(t, pg)

	// --- 3. Run every worker end to end ---
	t.Run("analyze-vacancies", func(t *testing.T) {
		httpClient := commonhttp.NewClient(config.GetDuration(cfg.Sources.HH.Timeout), cfg.Sources.HH.UserAgent)
		srcs := []sources.VacancySource{
			sources.NewHHClient(cfg.Sources, httpClient, log),
			sources.NewLinkedInSource(cfg.Sources.LinkedIn.Items, log),
		}

		handler := analyzevacancies.NewHandler(
			&analyzevacancies.Config{DefaultQuery: "Python developer", SampleSize: 10, Timeout: 60 * time.Second},
			srcs, esClient, redisClient, nil, log,
		)

		output, err := handler.Execute(ctx, &analyzevacancies.Input{Industry: "IT Services"})
		require.NoError(t, err)
		assert.Equal(t, "success", output.Status)
		assert.GreaterOrEqual(t, output.TotalVacancies, 50) // canned source alone yields 50
		t.Logf("✅ analyzed %d vacancies, competencies: %v", output.TotalVacancies, output.CompetenciesFound)
	})

	t.Run("score-company", func(t *testing.T) {
		handler := scorecompany.NewHandler(
			&scorecompany.Config{CacheTTL: time.Minute, Timeout: 10 * time.Second},
			pg.DB, redisClient.Client, log,
		)

		output, err := handler.Execute(ctx, &scorecompany.Input{
			CompanyID:          "e2e_company_1",
			CompetencyMatchPct: 100,
		})
		require.NoError(t, err)
		assert.Equal(t, "e2e_company_1", output.CompanyID)
		assert.Greater(t, output.Scoring, 0.0)
		assert.LessOrEqual(t, output.Scoring, 100.0)
		t.Logf("✅ company scored %.1f", output.Scoring)
	})

	t.Run("search-companies", func(t *testing.T) {
		handler := searchcompanies.NewHandler(
			&searchcompanies.Config{DefaultLocation: "Moscow", DefaultLimit: 100, Timeout: 10 * time.Second},
			pg.DB, log,
		)

		output, err := handler.Execute(ctx, &searchcompanies.Input{
			Demanded: []string{"Python", "Go"},
		})
		require.NoError(t, err)
		assert.Equal(t, "success", output.Status)
		require.NotEmpty(t, output.Companies)
		for i := 1; i < len(output.Companies); i++ {
			assert.GreaterOrEqual(t, output.Companies[i-1].Scoring, output.Companies[i].Scoring)
		}
		t.Logf("✅ found %d ranked companies", len(output.Companies))
	})

	var letter string
	t.Run("generate-communication", func(t *testing.T) {
		handler := generatecommunication.NewHandler(
			&generatecommunication.Config{Timeout: 10 * time.Second}, nil, log,
		)

		output, err := handler.Execute(ctx, &generatecommunication.Input{
			CompanyID:   "e2e_company_1",
			CompanyName: "E2E Tech",
			Recipient:   "VP of Engineering",
			Email:       "vp@e2e-tech.ru",
			TechStack:   "Python, Go",
			Style:       "formal",
		})
		require.NoError(t, err)
		assert.Equal(t, "formal", output.SelectedTone)
		assert.Len(t, output.CommunicationPlan, 5)
		letter = output.LetterFormal
		t.Logf("✅ plan %s with %d stages", output.PlanID, len(output.CommunicationPlan))
	})

	t.Run("send-communication", func(t *testing.T) {
		// Email stays disabled so no real mail leaves the test run.
		sendCfg := sendcommunication.LoadConfig()
		sendCfg.EmailEnabled = false

		handler, err := sendcommunication.NewHandler(sendCfg, pg.DB, log)
		require.NoError(t, err)

		output, err := handler.Execute(ctx, &sendcommunication.Input{
			Email:       "vp@e2e-tech.ru",
			CompanyName: "E2E Tech",
			Recipient:   "VP of Engineering",
			Letter:      letter,
			Stage:       1,
		})
		require.NoError(t, err)
		assert.Equal(t, sendcommunication.StatusDisabled, output.Status)

		var logged int
		require.NoError(t, pg.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM communications_log WHERE message_id = $1", output.MessageID).Scan(&logged))
		assert.Equal(t, 1, logged)
		t.Log("✅ communication attempt audited")
	})

	t.Run("build-dashboard", func(t *testing.T) {
		handler := builddashboard.NewHandler(builddashboard.LoadConfig(), pg.DB, redisClient, log)

		output, err := handler.Execute(ctx, &builddashboard.Input{RequestedBy: "e2e"})
		require.NoError(t, err)
		assert.Equal(t, "success", output.Status)
		assert.GreaterOrEqual(t, output.Metrics.TotalCompanies, 2)
		assert.Contains(t, output.KPIs, "partner_pool")
		assert.Contains(t, output.KPIs, "top_10_score")
		t.Logf("✅ dashboard: %+v", output.Metrics)
	})

	t.Log("✅ ALL TESTS PASSED — Full E2E workflow successful!")
}

func createTables(t *testing.T, pg *database.PostgresClient) {
	t.Log("🔧 Creating database tables...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			city TEXT,
			employees INTEGER DEFAULT 0,
			tech_stack JSONB DEFAULT '[]',
			funding TEXT DEFAULT '',
			website TEXT DEFAULT '',
			linkedin_url TEXT DEFAULT '',
			scoring DOUBLE PRECISION DEFAULT 0,
			decision_maker TEXT DEFAULT '',
			email TEXT DEFAULT '',
			phone TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS communications_log (
			id SERIAL PRIMARY KEY,
			message_id TEXT NOT NULL,
			company_name TEXT,
			recipient TEXT,
			email TEXT,
			channel TEXT,
			status TEXT,
			sent_at TEXT
		)`,
	}

	for _, stmt := range statements {
		_, err := pg.DB.Exec(stmt)
		require.NoError(t, err)
	}
}

func seedCompanies(t *testing.T, pg *database.PostgresClient) {
	t.Log("🔧 Seeding test companies...")

	_, err := pg.DB.Exec(`
		INSERT INTO companies (id, name, city, employees, tech_stack, funding, decision_maker, email)
		VALUES
			('e2e_company_1', 'E2E Tech', 'Moscow', 500, '["Python","Go","Docker"]', 'Series B', 'VP of Engineering', 'vp@e2e-tech.ru'),
			('e2e_company_2', 'E2E Labs', 'Moscow', 50, '["JavaScript","React"]', 'Unknown', 'CTO', 'cto@e2e-labs.ru')
		ON CONFLICT (id) DO NOTHING`)
	require.NoError(t, err)
}
