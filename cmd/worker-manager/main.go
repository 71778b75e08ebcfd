// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"edagent-workers/internal/common/camunda"
	"edagent-workers/internal/common/config"
	"edagent-workers/internal/common/database"
	commonhttp "edagent-workers/internal/common/http"
	"edagent-workers/internal/common/logger"
	"edagent-workers/internal/common/observability"
	"edagent-workers/internal/sources"

	// Vacancy Analysis (1)
	av "edagent-workers/internal/workers/vacancy/analyze-vacancies"

	// Company Pipeline (2)
	sc "edagent-workers/internal/workers/company/score-company"
	sco "edagent-workers/internal/workers/company/search-companies"

	// Outreach (2)
	gc "edagent-workers/internal/workers/outreach/generate-communication"
	sdc "edagent-workers/internal/workers/outreach/send-communication"

	// Analytics (1)
	bd "edagent-workers/internal/workers/analytics/build-dashboard"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Vacancy Sources ---
	httpClient := commonhttp.NewClient(config.GetDuration(cfg.Sources.HH.Timeout), cfg.Sources.HH.UserAgent)
	vacancySources := []sources.VacancySource{
		sources.NewHHClient(cfg.Sources, httpClient, log),
	}
	if cfg.Sources.LinkedIn.Enabled {
		vacancySources = append(vacancySources, sources.NewLinkedInSource(cfg.Sources.LinkedIn.Items, log))
	}
	zapLog.Info("Vacancy sources initialized", zap.Int("count", len(vacancySources)))

	// --- START: Register ALL 6 Workers ---

	// --- 1. Vacancy Analysis (1) ---
	if config.IsWorkerEnabled(cfg, av.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, av.TaskType)
		handler := av.NewHandler(
			&av.Config{
				DefaultQuery: "Python developer",
				SampleSize:   10,
				Timeout:      config.GetDuration(wcfg.Timeout),
			},
			vacancySources, esClient, redisClient, obs, log,
		)
		startWorker(zeebeClient, av.TaskType, wcfg, handler.Handle, obs, zapLog)
	}

	// --- 2. Company Pipeline (2) ---
	if config.IsWorkerEnabled(cfg, sc.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, sc.TaskType)
		handler := sc.NewHandler(
			&sc.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  config.GetDuration(wcfg.Timeout),
			},
			pg.DB, redisClient.Client, log,
		)
		startWorker(zeebeClient, sc.TaskType, wcfg, handler.Handle, obs, zapLog)
	}

	if config.IsWorkerEnabled(cfg, sco.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, sco.TaskType)
		handler := sco.NewHandler(
			&sco.Config{
				DefaultLocation: "Moscow",
				DefaultLimit:    100,
				Timeout:         config.GetDuration(wcfg.Timeout),
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, sco.TaskType, wcfg, handler.Handle, obs, zapLog)
	}

	// --- 3. Outreach (2) ---
	if config.IsWorkerEnabled(cfg, gc.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, gc.TaskType)
		handler := gc.NewHandler(
			&gc.Config{
				Timeout: config.GetDuration(wcfg.Timeout),
			},
			obs, log,
		)
		startWorker(zeebeClient, gc.TaskType, wcfg, handler.Handle, obs, zapLog)
	}

	if config.IsWorkerEnabled(cfg, sdc.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, sdc.TaskType)
		handler, err := sdc.NewHandler(
			&sdc.Config{
				AWSRegion:    cfg.AWS.Region,
				ProgramName:  cfg.Outreach.ProgramName,
				FromEmail:    cfg.Outreach.FromEmail,
				EmailEnabled: cfg.Outreach.Email.Enabled,
				SMSEnabled:   cfg.Outreach.SMS.Enabled,
				OwnerPhone:   cfg.Outreach.SMS.OwnerPhone,
				NudgeStages:  cfg.Outreach.SMS.NudgeStages,
				Timeout:      config.GetDuration(wcfg.Timeout),
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-communication handler", zap.Error(err))
		}
		startWorker(zeebeClient, sdc.TaskType, wcfg, handler.Handle, obs, zapLog)
	}

	// --- 4. Analytics (1) ---
	if config.IsWorkerEnabled(cfg, bd.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, bd.TaskType)
		handler := bd.NewHandler(
			&bd.Config{
				TopN:              10,
				PartnerPoolTarget: 100,
				TopScoreTarget:    80,
				ResponseRate:      0.15,
				Timeout:           config.GetDuration(wcfg.Timeout),
			},
			pg.DB, redisClient, log,
		)
		startWorker(zeebeClient, bd.TaskType, wcfg, handler.Handle, obs, zapLog)
	}

	zapLog.Info("All 6 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := camClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), obs *observability.Observability, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	instrumented := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		handlerFunc(jobClient, job)
		ctx := context.Background()
		obs.RecordJobProcessed(ctx, taskType)
		obs.RecordJobDuration(ctx, time.Since(start), taskType)
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(instrumented).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
