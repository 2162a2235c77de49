// internal/workers/scoring/score-training/handler_test.go
package scoretraining

import (
	"context"
	"fmt"
	"testing"
	"time"

	commonerrors "vitality-workers/internal/common/errors"
	"vitality-workers/internal/common/logger"
	"vitality-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), logger.NewTestLogger(t))
}

func fptr(v float64) *float64 { return &v }

func createSessionPayload(overrides map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{
		"type":            "Strength",
		"durationMinutes": float64(60),
		"intensity":       "Moderate",
		"goal":            "strength",
		"comment":         "felt strong today",
		"skipped":         false,
	}
	for k, v := range overrides {
		payload[k] = v
	}
	return payload
}

func createTestInput(session map[string]interface{}) *Input {
	return &Input{
		UserID:  "user-001",
		Date:    "2026-03-01",
		Session: session,
		Biometrics: scoring.DailyBiometrics{
			Date:            "2026-03-01",
			RecoveryPercent: fptr(80),
			StrainScore:     fptr(13),
		},
		Context: scoring.UserContext{PrimaryGoal: "Build strength"},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := createTestHandler(t)
	input := createTestInput(createSessionPayload(nil))

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "green", output.Zone)
	assert.GreaterOrEqual(t, output.TrainingScore, 1.0)
	assert.LessOrEqual(t, output.TrainingScore, 10.0)
	assert.NotEmpty(t, output.Analysis)
	assert.Contains(t, output.Breakdown, "strain")
	assert.Contains(t, output.Breakdown, "session")
	assert.Contains(t, output.Breakdown, "goal")
	assert.Contains(t, output.Breakdown, "safety")
	assert.Greater(t, output.StrainBand.Max, output.StrainBand.Min)
}

func TestHandler_Execute_MirrorsEngine(t *testing.T) {
	handler := createTestHandler(t)
	input := createTestInput(createSessionPayload(nil))

	want := scoring.ScoreTraining(scoring.TrainingSession{
		Type:            "Strength",
		DurationMinutes: 60,
		Intensity:       scoring.IntensityModerate,
		Goal:            "strength",
		Comment:         "felt strong today",
	}, input.Biometrics, input.Context)

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, want.Score, output.TrainingScore)
	assert.Equal(t, string(want.Zone), output.Zone)
	assert.Equal(t, want.Breakdown, output.Breakdown)
}

func TestHandler_Execute_SkippedSession(t *testing.T) {
	handler := createTestHandler(t)
	input := createTestInput(map[string]interface{}{
		"type":    "Rest",
		"skipped": true,
	})

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 0.0, output.TrainingScore)
	assert.Equal(t, "red", output.Zone)
	assert.Contains(t, output.Analysis, "skipped")
}

func TestHandler_Execute_DeloadCommentShiftsBand(t *testing.T) {
	handler := createTestHandler(t)

	baseline, err := handler.Execute(context.Background(), createTestInput(createSessionPayload(nil)))
	require.NoError(t, err)

	deload, err := handler.Execute(context.Background(), createTestInput(createSessionPayload(map[string]interface{}{
		"comment": "taking a deload week",
	})))
	require.NoError(t, err)

	assert.Less(t, deload.StrainBand.Max, baseline.StrainBand.Max)
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Execute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		session map[string]interface{}
	}{
		{
			name:    "missing session payload",
			session: nil,
		},
		{
			name:    "duration is a string",
			session: createSessionPayload(map[string]interface{}{"durationMinutes": "sixty"}),
		},
		{
			name:    "negative duration",
			session: createSessionPayload(map[string]interface{}{"durationMinutes": float64(-5)}),
		},
		{
			name:    "unknown intensity",
			session: createSessionPayload(map[string]interface{}{"intensity": "Brutal"}),
		},
		{
			name:    "skipped is not a boolean",
			session: createSessionPayload(map[string]interface{}{"skipped": "yes"}),
		},
		{
			name:    "unexpected property",
			session: createSessionPayload(map[string]interface{}{"caloriesBurned": float64(500)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)

			output, err := handler.Execute(context.Background(), createTestInput(tt.session))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSessionValidationFailed)
			assert.Nil(t, output)
		})
	}
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestConvertToStandardError_ValidationIsFinal(t *testing.T) {
	err := fmt.Errorf("%w: durationMinutes: Invalid type", ErrSessionValidationFailed)

	stdErr := convertToStandardError(err)

	assert.Equal(t, commonerrors.ErrCodeSessionValidationFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "durationMinutes")
}

func TestConvertToStandardError_UnknownFailure(t *testing.T) {
	stdErr := convertToStandardError(fmt.Errorf("something unexpected"))

	assert.Equal(t, commonerrors.ErrCodeTrainingScoreFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}
