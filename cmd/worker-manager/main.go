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
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	commonaws "edital-workers/internal/common/aws"
	"edital-workers/internal/common/camunda"
	"edital-workers/internal/common/config"
	"edital-workers/internal/common/database"
	"edital-workers/internal/common/logger"
	"edital-workers/internal/common/observability"
	"edital-workers/internal/engine/scoring"

	// Data Access Workers (2)
	fb "edital-workers/internal/workers/data-access/fetch-bid"
	fcp "edital-workers/internal/workers/data-access/fetch-company-profile"

	// Analysis Workers (5)
	cvs "edital-workers/internal/workers/analysis/calculate-viability-score"
	cr "edital-workers/internal/workers/analysis/compose-recommendation"
	ebd "edital-workers/internal/workers/analysis/evaluate-bid-decision"
	gn "edital-workers/internal/workers/analysis/generate-narrative"
	sa "edital-workers/internal/workers/analysis/store-analysis"

	// Communication Workers (1)
	nar "edital-workers/internal/workers/communication/notify-analysis-result"
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

	tracing, err := observability.NewTracing("worker-manager", cfg.App.JaegerEndpoint)
	if err != nil {
		zapLog.Fatal("tracing setup failed", zap.Error(err))
	}
	defer tracing.Shutdown()

	calculator, err := scoring.NewCalculator(cfg.Analysis.Weights)
	if err != nil {
		zapLog.Fatal("invalid scoring weights", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
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
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- START: Register ALL 8 Workers ---

	// --- 1. Data Access Workers (2) ---
	if cfg.Workers[fb.TaskType].Enabled {
		handler := fb.NewHandler(
			&fb.Config{
				CacheTTL: time.Duration(cfg.Analysis.CacheTTL) * time.Second,
				Timeout:  time.Duration(cfg.Workers[fb.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, fb.TaskType, cfg.Workers[fb.TaskType], handler.Handle, tracing, zapLog)
	}

	if cfg.Workers[fcp.TaskType].Enabled {
		handler := fcp.NewHandler(
			&fcp.Config{
				CacheTTL: time.Duration(cfg.Analysis.CacheTTL) * time.Second,
				Timeout:  time.Duration(cfg.Workers[fcp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, fcp.TaskType, cfg.Workers[fcp.TaskType], handler.Handle, tracing, zapLog)
	}

	// --- 2. Analysis Workers (5) ---
	if cfg.Workers[cvs.TaskType].Enabled {
		handler := cvs.NewHandler(
			&cvs.Config{
				Timeout: time.Duration(cfg.Workers[cvs.TaskType].Timeout) * time.Millisecond,
			},
			calculator, log,
		)
		startWorker(zeebeClient, cvs.TaskType, cfg.Workers[cvs.TaskType], handler.Handle, tracing, zapLog)
	}

	if cfg.Workers[ebd.TaskType].Enabled {
		handler := ebd.NewHandler(
			&ebd.Config{
				Timeout: time.Duration(cfg.Workers[ebd.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, ebd.TaskType, cfg.Workers[ebd.TaskType], handler.Handle, tracing, zapLog)
	}

	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{
				Timeout: time.Duration(cfg.Workers[cr.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, tracing, zapLog)
	}

	if cfg.Workers[gn.TaskType].Enabled {
		gnConfig := &gn.Config{
			GenAIBaseURL: cfg.APIs.GenAI.BaseURL,
			APIKey:       cfg.APIs.GenAI.APIKey,
			Timeout:      time.Duration(cfg.Workers[gn.TaskType].Timeout) * time.Millisecond,
			MaxRetries:   cfg.Workers[gn.TaskType].MaxRetries,
		}
		if cfg.APIs.GenAI.Timeout > 0 {
			gnConfig.Timeout = time.Duration(cfg.APIs.GenAI.Timeout) * time.Millisecond
		}
		handler := gn.NewHandler(gnConfig, log)
		startWorker(zeebeClient, gn.TaskType, cfg.Workers[gn.TaskType], handler.Handle, tracing, zapLog)
	}

	if cfg.Workers[sa.TaskType].Enabled {
		handler := sa.NewHandler(
			&sa.Config{
				Timeout:       time.Duration(cfg.Workers[sa.TaskType].Timeout) * time.Millisecond,
				AnalysisIndex: cfg.Analysis.AnalysisIndex,
			},
			pg.DB, esClient.Client, log,
		)
		startWorker(zeebeClient, sa.TaskType, cfg.Workers[sa.TaskType], handler.Handle, tracing, zapLog)
	}

	// --- 3. Communication Workers (1) ---
	if cfg.Workers[nar.TaskType].Enabled {
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}

		handler := nar.NewHandler(
			&nar.Config{
				SenderEmail: cfg.Notifications.Email.FromEmail,
				Region:      cfg.Integrations.AWS.Region,
				Timeout:     time.Duration(cfg.Workers[nar.TaskType].Timeout) * time.Millisecond,
			},
			sesClient, snsClient, log,
		)
		startWorker(zeebeClient, nar.TaskType, cfg.Workers[nar.TaskType], handler.Handle, tracing, zapLog)
	}

	zapLog.Info("All workers registered successfully")

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
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
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

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), tracing *observability.Tracing, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	// Every job gets a span so the Jaeger trace shows which task type
	// handled which process instance.
	traced := func(jobClient worker.JobClient, job entities.Job) {
		_, span := tracing.StartSpan(context.Background(), taskType,
			attribute.Int64("job.key", job.Key),
			attribute.Int64("process.instance.key", job.ProcessInstanceKey),
		)
		defer span.End()
		handlerFunc(jobClient, job)
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(traced).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
