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

	"vitality-workers/internal/common/config"
	"vitality-workers/internal/common/database"
	"vitality-workers/internal/common/logger"
	"vitality-workers/internal/common/observability"
	"vitality-workers/internal/telemetry"

	// Scoring Workers (4)
	bds "vitality-workers/internal/workers/scoring/build-daily-summary"
	cfs "vitality-workers/internal/workers/scoring/compute-fitscore"
	sr "vitality-workers/internal/workers/scoring/score-recovery"
	st "vitality-workers/internal/workers/scoring/score-training"

	// Data Access Workers (1)
	qhd "vitality-workers/internal/workers/data-access/query-health-data"

	// Telemetry Workers (1)
	stl "vitality-workers/internal/workers/telemetry/sync-telemetry"
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

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// The bootstrap logger only covers config loading; from here on the
	// configured level and format apply.
	zapLog.Sync()
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
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

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Wearable Vendor Client ---
	vendorClient := telemetry.NewClient(cfg.Telemetry, log)
	zapLog.Info("Telemetry client initialized")

	// --- START: Register Workers ---

	// --- 1. Scoring Workers (4) ---
	if cfg.Workers[sr.TaskType].Enabled {
		handler := sr.NewHandler(
			&sr.Config{
				Timeout:  time.Duration(cfg.Workers[sr.TaskType].Timeout) * time.Millisecond,
				CacheTTL: time.Duration(cfg.Scoring.RecoveryCacheTTL) * time.Second,
			},
			redis, log,
		)
		startWorker(zeebeClient, sr.TaskType, cfg.Workers[sr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[st.TaskType].Enabled {
		handler := st.NewHandler(
			&st.Config{
				Timeout: time.Duration(cfg.Workers[st.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, st.TaskType, cfg.Workers[st.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cfs.TaskType].Enabled {
		handler := cfs.NewHandler(
			&cfs.Config{
				Timeout:          time.Duration(cfg.Workers[cfs.TaskType].Timeout) * time.Millisecond,
				CacheTTL:         time.Duration(cfg.Scoring.FitScoreCacheTTL) * time.Second,
				TargetSleepHours: cfg.Scoring.TargetSleepHours,
			},
			redis, log,
		)
		startWorker(zeebeClient, cfs.TaskType, cfg.Workers[cfs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[bds.TaskType].Enabled {
		handler := bds.NewHandler(
			&bds.Config{
				Timeout: time.Duration(cfg.Workers[bds.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, bds.TaskType, cfg.Workers[bds.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Data Access Workers (1) ---
	if cfg.Workers[qhd.TaskType].Enabled {
		handler := qhd.NewHandler(
			&qhd.Config{
				Timeout: time.Duration(cfg.Workers[qhd.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, qhd.TaskType, cfg.Workers[qhd.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Telemetry Workers (1) ---
	if cfg.Workers[stl.TaskType].Enabled {
		handler := stl.NewHandler(
			&stl.Config{
				Timeout:      time.Duration(cfg.Workers[stl.TaskType].Timeout) * time.Millisecond,
				FetchLockTTL: time.Duration(cfg.Telemetry.FetchLockTTL) * time.Second,
			},
			vendorClient, pg.DB, redis, log,
		)
		startWorker(zeebeClient, stl.TaskType, cfg.Workers[stl.TaskType], handler.Handle, zapLog)
	}

	// --- END: Register Workers ---

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
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

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
