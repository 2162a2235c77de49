// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeTelemetryFetchFailed   ErrorCode = "TELEMETRY_FETCH_FAILED"
	ErrCodeTelemetryUnauthorized  ErrorCode = "TELEMETRY_UNAUTHORIZED"
	ErrCodeTelemetryFetchInFlight ErrorCode = "TELEMETRY_FETCH_IN_FLIGHT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeBiometricsNotFound       ErrorCode = "BIOMETRICS_NOT_FOUND"
	ErrCodeProfileNotFound          ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeInvalidInput            ErrorCode = "INVALID_INPUT"
	ErrCodeSessionValidationFailed ErrorCode = "SESSION_VALIDATION_FAILED"

	ErrCodeRecoveryScoreFailed ErrorCode = "RECOVERY_SCORE_FAILED"
	ErrCodeTrainingScoreFailed ErrorCode = "TRAINING_SCORE_FAILED"
	ErrCodeFitScoreFailed      ErrorCode = "FITSCORE_FAILED"
	ErrCodeSummaryBuildFailed  ErrorCode = "SUMMARY_BUILD_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeTelemetryFetchFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeTelemetryFetchInFlight:
		return 2 // Timeouts and lock contention resolve quickly or not at all

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewTelemetryFetchFailedError creates a retryable vendor-API error.
func NewTelemetryFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTelemetryFetchFailed,
		Message:   "Failed to fetch telemetry from wearable provider",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTelemetryUnauthorizedError creates a non-retryable credential error.
func NewTelemetryUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTelemetryUnauthorized,
		Message:   "Wearable provider rejected the credentials",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTelemetryFetchInFlightError signals another fetch already holds the
// per-user/day lock; the workflow should retry later.
func NewTelemetryFetchInFlightError(userID, date string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTelemetryFetchInFlight,
		Message:   "A telemetry fetch for this user and day is already running",
		Details:   fmt.Sprintf("userId: %s, date: %s", userID, date),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable database error.
func NewQueryExecutionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBiometricsNotFoundError creates a non-retryable lookup error.
func NewBiometricsNotFoundError(userID, date string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBiometricsNotFound,
		Message:   "No biometrics stored for the requested day",
		Details:   fmt.Sprintf("userId: %s, date: %s", userID, date),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable lookup error.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "User profile not found",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionValidationFailedError creates a non-retryable input error.
func NewSessionValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionValidationFailed,
		Message:   "Training session payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable timeout error.
func NewQueryTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timed out",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryTypeError creates a non-retryable routing error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unknown query type",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable error for job variables
// that cannot be parsed.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Job variables could not be parsed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecoveryScoreFailedError wraps an unexpected recovery-scoring
// failure. The calculation is deterministic, so retrying will not help.
func NewRecoveryScoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecoveryScoreFailed,
		Message:   "Recovery score calculation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTrainingScoreFailedError wraps an unexpected training-scoring failure.
func NewTrainingScoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrainingScoreFailed,
		Message:   "Training score calculation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFitScoreFailedError wraps an unexpected composite-scoring failure.
func NewFitScoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFitScoreFailed,
		Message:   "FitScore calculation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSummaryBuildFailedError wraps an unexpected summary-assembly failure.
func NewSummaryBuildFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSummaryBuildFailed,
		Message:   "Daily summary assembly failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
