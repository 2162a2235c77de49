// internal/workers/scoring/score-training/handler.go
package scoretraining

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
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "score-training"
)

var (
	ErrSessionValidationFailed = errors.New("SESSION_VALIDATION_FAILED")
)

// sessionSchema guards the user-entered session payload before it
// reaches the engine. The engine itself never rejects values, so type
// errors have to be caught here.
var sessionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"type":            map[string]interface{}{"type": "string"},
		"durationMinutes": map[string]interface{}{"type": "number", "minimum": 0},
		"intensity": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"Low", "Moderate", "High", ""},
		},
		"goal":    map[string]interface{}{"type": "string"},
		"comment": map[string]interface{}{"type": "string"},
		"skipped": map[string]interface{}{"type": "boolean"},
	},
	"additionalProperties": false,
}

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
	if errors.Is(err, ErrSessionValidationFailed) {
		return commonerrors.NewSessionValidationFailedError(err.Error())
	}
	return commonerrors.NewTrainingScoreFailedError(err)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	session, err := h.validateSession(input.Session)
	if err != nil {
		return nil, err
	}

	result := scoring.ScoreTraining(session, input.Biometrics, input.Context)
	band := scoring.StrainBand(result.Zone, input.Context, session.Comment)
	metrics.ScoresComputed.WithLabelValues("training", string(result.Zone)).Inc()

	h.logger.Info("training score calculated", map[string]interface{}{
		"userId":  input.UserID,
		"date":    input.Date,
		"score":   result.Score,
		"zone":    result.Zone,
		"skipped": session.Skipped,
	})

	return &Output{
		TrainingScore: result.Score,
		Zone:          string(result.Zone),
		StrainBand:    band,
		Breakdown:     result.Breakdown,
		Analysis:      result.Analysis,
	}, nil
}

func (h *Handler) validateSession(raw map[string]interface{}) (scoring.TrainingSession, error) {
	var session scoring.TrainingSession

	if raw == nil {
		return session, fmt.Errorf("%w: session payload missing", ErrSessionValidationFailed)
	}

	schemaLoader := gojsonschema.NewGoLoader(sessionSchema)
	documentLoader := gojsonschema.NewGoLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return session, fmt.Errorf("%w: %v", ErrSessionValidationFailed, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return session, fmt.Errorf("%w: %s", ErrSessionValidationFailed, strings.Join(errs, "; "))
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return session, fmt.Errorf("%w: %v", ErrSessionValidationFailed, err)
	}
	if err := json.Unmarshal(payload, &session); err != nil {
		return session, fmt.Errorf("%w: %v", ErrSessionValidationFailed, err)
	}

	return session, nil
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
