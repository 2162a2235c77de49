// internal/workers/scoring/compute-fitscore/handler.go
package computefitscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vitality-workers/internal/common/database"
	commonerrors "vitality-workers/internal/common/errors"
	"vitality-workers/internal/common/logger"
	"vitality-workers/internal/common/metrics"
	"vitality-workers/internal/common/observability"
	"vitality-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-fitscore"
)

type Handler struct {
	config *Config
	cache  *database.RedisClient
	logger logger.Logger
}

func NewHandler(config *Config, cache *database.RedisClient, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
	return commonerrors.NewFitScoreFailedError(err)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	cacheKey := h.cacheKey(input.UserID, input.Date)
	if cacheKey != "" && h.cache != nil {
		if val, err := h.cache.Get(ctx, cacheKey); err == nil {
			var cached Output
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				cached.FromCache = true
				return &cached, nil
			}
		}
	}

	components := input.Components
	if components.TargetSleepHours <= 0 {
		components.TargetSleepHours = h.config.TargetSleepHours
	}

	result := scoring.ComputeFitScore(components)
	metrics.ScoresComputed.WithLabelValues("fitscore", "").Inc()

	output := &Output{
		FitScore:        result.FitScore,
		Components:      result.Components,
		Recommendations: result.Recommendations,
		Analysis:        scoring.NarrateFitScore(result),
	}

	h.logger.Info("fitscore calculated", map[string]interface{}{
		"userId":   input.UserID,
		"date":     input.Date,
		"fitScore": result.FitScore,
	})

	if cacheKey != "" && h.cache != nil {
		payload, err := json.Marshal(output)
		if err == nil {
			if err := h.cache.Set(ctx, cacheKey, payload, h.config.CacheTTL); err != nil {
				h.logger.Warn("failed to cache fitscore", map[string]interface{}{
					"key":   cacheKey,
					"error": err.Error(),
				})
			}
		}
	}

	return output, nil
}

func (h *Handler) cacheKey(userID, date string) string {
	if userID == "" || date == "" {
		return ""
	}
	return fmt.Sprintf("fitscore:%s:%s", userID, date)
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
