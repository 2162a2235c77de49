// internal/workers/scoring/build-daily-summary/handler.go
package builddailysummary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

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
	TaskType = "build-daily-summary"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
	return commonerrors.NewSummaryBuildFailedError(err)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	rows := scoring.SummaryRows(input.FitScore)
	summary := scoring.NarrateFitScore(input.FitScore)

	h.logger.Info("daily summary built", map[string]interface{}{
		"userId":   input.UserID,
		"date":     input.Date,
		"fitScore": input.FitScore.FitScore,
	})

	return &Output{
		Rows:     rows,
		Summary:  summary,
		Headline: h.headline(input),
	}, nil
}

// headline is the one-line banner above the table. It leads with the
// recovery zone when known, otherwise with the composite.
func (h *Handler) headline(input *Input) string {
	parts := make([]string, 0, 3)

	switch input.RecoveryZone {
	case string(scoring.ZoneGreen):
		parts = append(parts, "Recovered and ready.")
	case string(scoring.ZoneYellow):
		parts = append(parts, "Partly recovered, train with care.")
	case string(scoring.ZoneRed):
		parts = append(parts, "Low recovery, prioritize rest.")
	}

	if input.RecoveryScore != nil {
		parts = append(parts, fmt.Sprintf("Recovery %.1f/10.", *input.RecoveryScore))
	}
	if input.TrainingScore != nil {
		parts = append(parts, fmt.Sprintf("Training %.1f/10.", *input.TrainingScore))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("FitScore %.1f/10.", input.FitScore.FitScore)
	}
	return strings.Join(parts, " ")
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
