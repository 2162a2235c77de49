// internal/workers/telemetry/sync-telemetry/handler.go
package synctelemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vitality-workers/internal/common/database"
	commonerrors "vitality-workers/internal/common/errors"
	"vitality-workers/internal/common/logger"
	"vitality-workers/internal/common/metrics"
	"vitality-workers/internal/common/observability"
	"vitality-workers/internal/models"
	"vitality-workers/internal/telemetry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "sync-telemetry"
)

// SnapshotFetcher is satisfied by the vendor client; tests substitute a
// stub so no network is involved.
type SnapshotFetcher interface {
	FetchDaily(ctx context.Context, userID, date string) (*telemetry.DailySnapshot, error)
}

type Handler struct {
	config  *Config
	fetcher SnapshotFetcher
	db      *sql.DB
	cache   *database.RedisClient
	logger  logger.Logger
}

func NewHandler(config *Config, fetcher SnapshotFetcher, db *sql.DB, cache *database.RedisClient, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		fetcher: fetcher,
		db:      db,
		cache:   cache,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		stdErr := commonerrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		observability.RecordJobProcessed(context.Background(), TaskType, "failed")
		h.failJob(client, job, stdErr)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr := convertToStandardError(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		observability.RecordJobProcessed(ctx, TaskType, "failed")
		h.failJob(client, job, stdErr)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	observability.RecordJobProcessed(ctx, TaskType, "completed")
	observability.RecordJobDuration(ctx, TaskType, time.Since(startTime), "completed")
	h.completeJob(client, job, output)
}

func convertToStandardError(err error) *commonerrors.StandardError {
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return commonerrors.NewTelemetryFetchFailedError(err)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.UserID == "" || input.Date == "" {
		return nil, fmt.Errorf("userId and date are required")
	}

	lockKey := fmt.Sprintf("telemetry:fetch:%s:%s", input.UserID, input.Date)
	if h.cache != nil {
		acquired, err := h.cache.SetNX(ctx, lockKey, "1", h.config.FetchLockTTL)
		if err != nil {
			return nil, commonerrors.NewTelemetryFetchFailedError(err)
		}
		if !acquired {
			metrics.TelemetryFetches.WithLabelValues("in_flight").Inc()
			return nil, commonerrors.NewTelemetryFetchInFlightError(input.UserID, input.Date)
		}
		defer func() {
			if err := h.cache.Del(context.Background(), lockKey); err != nil {
				h.logger.Warn("failed to release fetch lock", map[string]interface{}{
					"key":   lockKey,
					"error": err.Error(),
				})
			}
		}()
	}

	snapshot, err := h.fetcher.FetchDaily(ctx, input.UserID, input.Date)
	if err != nil {
		metrics.TelemetryFetches.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.TelemetryFetches.WithLabelValues("success").Inc()

	if isEmptySnapshot(snapshot) {
		h.logger.Info("no telemetry reported for day", map[string]interface{}{
			"userId": input.UserID,
			"date":   input.Date,
		})
		return &Output{UserID: input.UserID, Date: input.Date, Synced: false}, nil
	}

	record := &models.BiometricRecord{
		ID:                uuid.NewString(),
		UserID:            input.UserID,
		Date:              input.Date,
		RecoveryPercent:   snapshot.RecoveryPercent,
		SleepHours:        snapshot.SleepHours,
		SleepScorePercent: snapshot.SleepScorePercent,
		HRV:               snapshot.HRV,
		HRVBaseline:       snapshot.HRVBaseline,
		RestingHeartRate:  snapshot.RestingHeartRate,
		StrainScore:       snapshot.StrainScore,
		FetchedAt:         time.Now().UTC(),
	}

	if err := h.upsert(ctx, record); err != nil {
		return nil, err
	}

	h.logger.Info("telemetry synced", map[string]interface{}{
		"userId": input.UserID,
		"date":   input.Date,
	})

	return &Output{UserID: input.UserID, Date: input.Date, Synced: true, Biometrics: record}, nil
}

// upsert keeps one biometrics row per user and day; later fetches for
// the same day replace earlier readings.
func (h *Handler) upsert(ctx context.Context, record *models.BiometricRecord) error {
	query := `INSERT INTO biometrics
		(id, user_id, date, recovery_percent, sleep_hours, sleep_score_percent,
		 hrv_ms, hrv_baseline_ms, resting_heart_rate, strain_score, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, date) DO UPDATE SET
		 recovery_percent = EXCLUDED.recovery_percent,
		 sleep_hours = EXCLUDED.sleep_hours,
		 sleep_score_percent = EXCLUDED.sleep_score_percent,
		 hrv_ms = EXCLUDED.hrv_ms,
		 hrv_baseline_ms = EXCLUDED.hrv_baseline_ms,
		 resting_heart_rate = EXCLUDED.resting_heart_rate,
		 strain_score = EXCLUDED.strain_score,
		 fetched_at = EXCLUDED.fetched_at,
		 updated_at = NOW()`

	_, err := h.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Date,
		record.RecoveryPercent, record.SleepHours, record.SleepScorePercent,
		record.HRV, record.HRVBaseline, record.RestingHeartRate, record.StrainScore,
		record.FetchedAt,
	)
	if err != nil {
		return commonerrors.NewQueryExecutionFailedError(err)
	}
	return nil
}

func isEmptySnapshot(s *telemetry.DailySnapshot) bool {
	if s == nil {
		return true
	}
	return s.RecoveryPercent == nil && s.SleepHours == nil && s.SleepScorePercent == nil &&
		s.HRV == nil && s.HRVBaseline == nil && s.RestingHeartRate == nil && s.StrainScore == nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, stdErr *commonerrors.StandardError) {
	bpmnErr := commonerrors.ConvertToBPMNError(stdErr)

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
		"retries":      bpmnErr.Retries,
	})

	failCmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(bpmnErr.Retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	var finalCmd interface {
		Send(context.Context) (*pb.FailJobResponse, error)
	}
	if varCmd, err := failCmd.VariablesFromMap(bpmnErr.ToErrorVariables()); err == nil {
		finalCmd = varCmd
	} else {
		h.logger.Error("failed to set error variables, sending without them", map[string]interface{}{
			"error": err.Error(),
		})
		finalCmd = failCmd
	}

	if _, err := finalCmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to fail job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
