package streamplan

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for streamplan errors.
type ErrorCode string

// Problem definition error codes
const (
	PROBLEM_PARSE_FAILED      ErrorCode = "PROBLEM_PARSE_FAILED"
	PROBLEM_VALIDATION_FAILED ErrorCode = "PROBLEM_VALIDATION_FAILED"
	PROBLEM_NOT_FOUND         ErrorCode = "PROBLEM_NOT_FOUND"
)

// External binding error codes
const (
	EXTERNAL_UNBOUND      ErrorCode = "EXTERNAL_UNBOUND"
	EXTERNAL_DECL_INVALID ErrorCode = "EXTERNAL_DECL_INVALID"
)

// Stream evaluation error codes
const (
	STREAM_GENERATOR_FAILED ErrorCode = "STREAM_GENERATOR_FAILED"
	STREAM_RESULT_INVALID   ErrorCode = "STREAM_RESULT_INVALID"
)

// Compilation and search error codes
const (
	EXOGENOUS_COMPILE_FAILED ErrorCode = "EXOGENOUS_COMPILE_FAILED"
	SEARCH_FAILED            ErrorCode = "SEARCH_FAILED"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Telemetry error codes
const (
	TRACING_INIT_FAILED     ErrorCode = "TRACING_INIT_FAILED"
	TRACING_SHUTDOWN_FAILED ErrorCode = "TRACING_SHUTDOWN_FAILED"
)

// StreamPlanError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints for error
// handling logic.
type StreamPlanError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *StreamPlanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *StreamPlanError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a StreamPlanError with the same Code.
func (e *StreamPlanError) Is(target error) bool {
	var spErr *StreamPlanError
	if errors.As(target, &spErr) {
		return e.Code == spErr.Code
	}
	return false
}

// NewError creates a new non-retryable StreamPlanError with the given code and message.
func NewError(code ErrorCode, message string) *StreamPlanError {
	return &StreamPlanError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable StreamPlanError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., exporter timeouts).
func NewRetryableError(code ErrorCode, message string) *StreamPlanError {
	return &StreamPlanError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable StreamPlanError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *StreamPlanError {
	return &StreamPlanError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}
