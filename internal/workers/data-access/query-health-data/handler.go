// internal/workers/data-access/query-health-data/handler.go
package queryhealthdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	commonerrors "vitality-workers/internal/common/errors"
	"vitality-workers/internal/common/logger"
	"vitality-workers/internal/common/metrics"
	"vitality-workers/internal/common/observability"
	"vitality-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "query-health-data"
)

var (
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
	ErrInvalidQueryType     = errors.New("INVALID_QUERY_TYPE")
	ErrBiometricsNotFound   = errors.New("BIOMETRICS_NOT_FOUND")
	ErrProfileNotFound      = errors.New("PROFILE_NOT_FOUND")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		stdErr := convertToStandardError(err, &input)
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

// convertToStandardError maps the query sentinels to their structured
// forms so failJob carries the right retry semantics.
func convertToStandardError(err error, input *Input) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrQueryTimeout):
		return commonerrors.NewQueryTimeoutError(err.Error())
	case errors.Is(err, ErrInvalidQueryType):
		return commonerrors.NewInvalidQueryTypeError(input.QueryType)
	case errors.Is(err, ErrBiometricsNotFound):
		return commonerrors.NewBiometricsNotFoundError(input.UserID, input.Date)
	case errors.Is(err, ErrProfileNotFound):
		return commonerrors.NewProfileNotFoundError(input.UserID)
	default:
		return commonerrors.NewQueryExecutionFailedError(err)
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrQueryExecutionFailed)
	}

	switch QueryType(input.QueryType) {
	case QueryTypeBiometrics:
		record, err := h.queryBiometrics(ctx, input.UserID, input.Date)
		if err != nil {
			return nil, err
		}
		return &Output{Biometrics: record, RowCount: 1}, nil

	case QueryTypeSessions:
		sessions, err := h.querySessions(ctx, input.UserID, input.Date)
		if err != nil {
			return nil, err
		}
		return &Output{Sessions: sessions, RowCount: len(sessions)}, nil

	case QueryTypeProfile:
		profile, err := h.queryProfile(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		return &Output{Profile: profile, RowCount: 1}, nil

	case QueryTypeDailyBundle:
		return h.queryDailyBundle(ctx, input.UserID, input.Date)

	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryType, input.QueryType)
	}
}

// queryDailyBundle loads everything the scoring flow needs in one job.
// Biometrics and profile are optional here; the scorers substitute
// neutral values for whatever is missing.
func (h *Handler) queryDailyBundle(ctx context.Context, userID, date string) (*Output, error) {
	output := &Output{}

	record, err := h.queryBiometrics(ctx, userID, date)
	if err != nil && !errors.Is(err, ErrBiometricsNotFound) {
		return nil, err
	}
	if record != nil {
		output.Biometrics = record
		output.RowCount++
	}

	sessions, err := h.querySessions(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	output.Sessions = sessions
	output.RowCount += len(sessions)

	profile, err := h.queryProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	if profile != nil {
		output.Profile = profile
		output.RowCount++
	}

	return output, nil
}

func (h *Handler) queryBiometrics(ctx context.Context, userID, date string) (*models.BiometricRecord, error) {
	query := `SELECT id, user_id, date, recovery_percent, sleep_hours, sleep_score_percent,
		hrv_ms, hrv_baseline_ms, resting_heart_rate, strain_score, fetched_at, updated_at
		FROM biometrics WHERE user_id = $1 AND date = $2`

	var (
		record          models.BiometricRecord
		recovery        sql.NullFloat64
		sleepHours      sql.NullFloat64
		sleepScore      sql.NullFloat64
		hrv             sql.NullFloat64
		hrvBaseline     sql.NullFloat64
		restingHR       sql.NullFloat64
		strain          sql.NullFloat64
		updatedAt       sql.NullTime
	)

	err := h.db.QueryRowContext(ctx, query, userID, date).Scan(
		&record.ID, &record.UserID, &record.Date,
		&recovery, &sleepHours, &sleepScore,
		&hrv, &hrvBaseline, &restingHR, &strain,
		&record.FetchedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: userId %s date %s", ErrBiometricsNotFound, userID, date)
		}
		return nil, h.wrapQueryError(ctx, err)
	}

	record.RecoveryPercent = nullToPtr(recovery)
	record.SleepHours = nullToPtr(sleepHours)
	record.SleepScorePercent = nullToPtr(sleepScore)
	record.HRV = nullToPtr(hrv)
	record.HRVBaseline = nullToPtr(hrvBaseline)
	record.RestingHeartRate = nullToPtr(restingHR)
	record.StrainScore = nullToPtr(strain)
	if updatedAt.Valid {
		record.UpdatedAt = &updatedAt.Time
	}

	return &record, nil
}

func (h *Handler) querySessions(ctx context.Context, userID, date string) ([]models.SessionRecord, error) {
	query := `SELECT id, user_id, date, session_type, duration_minutes, intensity, goal, comment, skipped, created_at
		FROM training_sessions WHERE user_id = $1 AND date = $2 ORDER BY created_at`

	rows, err := h.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, h.wrapQueryError(ctx, err)
	}
	defer rows.Close()

	sessions := make([]models.SessionRecord, 0, 2)
	for rows.Next() {
		var (
			record    models.SessionRecord
			intensity sql.NullString
			goal      sql.NullString
			comment   sql.NullString
		)
		if err := rows.Scan(
			&record.ID, &record.UserID, &record.Date, &record.Type,
			&record.DurationMinutes, &intensity, &goal, &comment,
			&record.Skipped, &record.CreatedAt,
		); err != nil {
			return nil, h.wrapQueryError(ctx, err)
		}
		record.Intensity = intensity.String
		record.Goal = goal.String
		record.Comment = comment.String
		sessions = append(sessions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, h.wrapQueryError(ctx, err)
	}

	return sessions, nil
}

func (h *Handler) queryProfile(ctx context.Context, userID string) (*models.ProfileRecord, error) {
	query := `SELECT user_id, rehab_stage, primary_goal, weekly_load, fitness_goal, target_sleep_hours, updated_at
		FROM user_profiles WHERE user_id = $1`

	var (
		record      models.ProfileRecord
		rehabStage  sql.NullString
		primaryGoal sql.NullString
		weeklyLoad  sql.NullString
		fitnessGoal sql.NullString
		sleepTarget sql.NullFloat64
	)

	err := h.db.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID, &rehabStage, &primaryGoal, &weeklyLoad, &fitnessGoal,
		&sleepTarget, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: userId %s", ErrProfileNotFound, userID)
		}
		return nil, h.wrapQueryError(ctx, err)
	}

	record.RehabStage = rehabStage.String
	record.PrimaryGoal = primaryGoal.String
	record.WeeklyLoad = weeklyLoad.String
	record.FitnessGoal = fitnessGoal.String
	if sleepTarget.Valid {
		record.TargetSleepHours = sleepTarget.Float64
	}

	return &record, nil
}

func (h *Handler) wrapQueryError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return ErrQueryTimeout
	}
	return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
}

func nullToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
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
