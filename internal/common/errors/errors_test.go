package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToBPMNError_RetryableTechnicalError(t *testing.T) {
	stdErr := NewQueryExecutionFailedError(fmt.Errorf("connection reset by peer"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "QUERY_EXECUTION_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, stdErr.Message, bpmnErr.Message)
}

func TestConvertToBPMNError_TimeoutGetsPartialRetry(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewQueryTimeoutError("biometrics lookup"))

	assert.Equal(t, 2, bpmnErr.Retries)
	assert.True(t, bpmnErr.Retryable)
}

func TestConvertToBPMNError_BusinessErrorNeverRetries(t *testing.T) {
	tests := []struct {
		name   string
		stdErr *StandardError
	}{
		{"validation failure", NewSessionValidationFailedError("durationMinutes: Invalid type")},
		{"biometrics not found", NewBiometricsNotFoundError("user-1", "2026-08-30")},
		{"profile not found", NewProfileNotFoundError("user-1")},
		{"unauthorized", NewTelemetryUnauthorizedError("token rejected")},
		{"unparseable input", NewInvalidInputError("unexpected end of JSON input")},
		{"invalid query type", NewInvalidQueryTypeError("weekly-bundle")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.stdErr)
			assert.False(t, bpmnErr.Retryable)
			assert.Equal(t, 0, bpmnErr.Retries)
		})
	}
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	stdErr := NewBiometricsNotFoundError("user-1", "2026-08-30")

	vars := ConvertToBPMNError(stdErr).ToErrorVariables()

	assert.Equal(t, "BIOMETRICS_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, false, vars["retryable"])
	assert.Equal(t, "BIOMETRICS_NOT_FOUND", vars["originalErrorCode"])
	assert.Contains(t, vars, "timestamp")
	assert.Contains(t, vars["errorDetails"], "user-1")
}

func TestGetRetryCount_ScoringFailuresAreFinal(t *testing.T) {
	for _, code := range []ErrorCode{
		ErrCodeRecoveryScoreFailed,
		ErrCodeTrainingScoreFailed,
		ErrCodeFitScoreFailed,
		ErrCodeSummaryBuildFailed,
	} {
		assert.Equal(t, 0, GetRetryCount(code), string(code))
	}
}
