package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents a specific error kind surfaced to tool callers
type ErrorCode string

const (
	// Configuration errors
	ErrConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Upstream request errors
	ErrAuthentication   ErrorCode = "AUTHENTICATION_FAILED"
	ErrTransientRequest ErrorCode = "TRANSIENT_REQUEST_FAILED"
	ErrRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrNotFound         ErrorCode = "NOT_FOUND"

	// Project resolution errors
	ErrMissingProject  ErrorCode = "MISSING_PROJECT"
	ErrProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	ErrAccessDenied    ErrorCode = "ACCESS_DENIED"

	// Tool invocation errors
	ErrReadOnlyMode ErrorCode = "READ_ONLY_MODE"
	ErrTransform    ErrorCode = "TRANSFORM_FAILED"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCancelled    ErrorCode = "OPERATION_CANCELLED"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

const (
	SeverityLow      ErrorSeverity = "LOW"
	SeverityMedium   ErrorSeverity = "MEDIUM"
	SeverityHigh     ErrorSeverity = "HIGH"
	SeverityCritical ErrorSeverity = "CRITICAL"
)

// RetryPolicy records whether an error may be retried by the client layer
type RetryPolicy struct {
	Retryable bool `json:"retryable"`
}

// AppError represents a structured application error with rich context
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Severity   ErrorSeverity          `json:"severity"`
	StatusCode int                    `json:"status_code,omitempty"` // upstream HTTP status, 0 when none
	Attempts   int                    `json:"attempts,omitempty"`
	Field      string                 `json:"field,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Retry      RetryPolicy            `json:"retry_policy"`
	Cause      error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Attempts > 1 {
		msg = fmt.Sprintf("%s after %d attempts", msg, e.Attempts)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: caused by: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for Go 1.13+ error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds contextual information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithAttempts tags the error with the number of attempts made
func (e *AppError) WithAttempts(attempts int) *AppError {
	e.Attempts = attempts
	return e
}

// IsRetryable returns whether this error should be retried
func (e *AppError) IsRetryable() bool {
	return e.Retry.Retryable
}

// NewError creates a new AppError with the given code and message
func NewError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  getDefaultSeverity(code),
		Timestamp: time.Now(),
		Retry:     RetryPolicy{Retryable: code == ErrTransientRequest},
	}
}

// NewErrorWithCause creates a new AppError wrapping an existing error
func NewErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	appErr := NewError(code, message)
	appErr.Cause = cause
	return appErr
}

// NewConfigurationError reports an invalid or incomplete configuration
func NewConfigurationError(message, details string) *AppError {
	appErr := NewError(ErrConfiguration, message)
	appErr.Details = details
	return appErr
}

// NewValidationError creates an invalid input error for a tool argument
func NewValidationError(field, reason string) *AppError {
	appErr := NewError(ErrInvalidInput, fmt.Sprintf("Validation failed for field '%s'", field))
	appErr.Details = reason
	appErr.Field = field
	return appErr
}

// NewGitLabError classifies a failed GitLab API response by status code
func NewGitLabError(operation string, statusCode int, responseBody string) *AppError {
	var code ErrorCode

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		code = ErrAuthentication
	case statusCode == http.StatusNotFound:
		code = ErrNotFound
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		code = ErrTransientRequest
	default:
		code = ErrRequestFailed
	}

	appErr := NewError(code, fmt.Sprintf("GitLab API %s failed", operation))
	appErr.StatusCode = statusCode
	appErr.Details = fmt.Sprintf("HTTP %d: %s", statusCode, truncate(responseBody, 512))
	return appErr
}

// NewNetworkError wraps a transport level failure, which is always retryable
func NewNetworkError(operation string, cause error) *AppError {
	return NewErrorWithCause(ErrTransientRequest, fmt.Sprintf("GitLab API %s failed", operation), cause)
}

// NewMissingProjectError reports that no project identifier was given or configured
func NewMissingProjectError() *AppError {
	appErr := NewError(ErrMissingProject, "No project specified and no default project configured")
	appErr.Details = "pass project_id or set GITLAB_PROJECT_ID"
	return appErr
}

// NewProjectNotFoundError reports a project identifier that does not resolve
func NewProjectNotFoundError(identifier string, cause error) *AppError {
	return NewErrorWithCause(ErrProjectNotFound, fmt.Sprintf("Project '%s' not found", identifier), cause).
		WithContext("project", identifier)
}

// NewAccessDeniedError reports a project the credential may not read
func NewAccessDeniedError(identifier string, cause error) *AppError {
	return NewErrorWithCause(ErrAccessDenied, fmt.Sprintf("Access denied to project '%s'", identifier), cause).
		WithContext("project", identifier)
}

// NewReadOnlyModeError rejects a mutating tool while read-only mode is active
func NewReadOnlyModeError(tool string) *AppError {
	return NewError(ErrReadOnlyMode, fmt.Sprintf("Tool '%s' modifies data and read-only mode is enabled", tool)).
		WithContext("tool", tool)
}

// NewTransformError reports a raw entity missing a required field
func NewTransformError(kind, field string) *AppError {
	appErr := NewError(ErrTransform, fmt.Sprintf("Cannot transform %s: missing required field '%s'", kind, field))
	appErr.Field = field
	return appErr.WithContext("kind", kind)
}

// NewDecodeError reports an upstream entity whose JSON does not match its
// expected shape. The offending field is named when the decoder knows it.
func NewDecodeError(kind string, cause error) *AppError {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(cause, &typeErr) && typeErr.Field != "" {
		appErr := NewErrorWithCause(ErrTransform,
			fmt.Sprintf("Cannot transform %s: field '%s' has an unexpected type", kind, typeErr.Field), cause)
		appErr.Field = typeErr.Field
		return appErr.WithContext("kind", kind)
	}
	appErr := NewErrorWithCause(ErrTransform, fmt.Sprintf("Cannot transform %s: malformed payload", kind), cause)
	return appErr.WithContext("kind", kind)
}

// NewCancelledError wraps a context cancellation
func NewCancelledError(message string, cause error) *AppError {
	return NewErrorWithCause(ErrCancelled, message, cause)
}

// AsAppError extracts the first AppError in the chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether any AppError in the chain carries the code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// CodeOf returns the code of the outermost AppError, or ErrInternal
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrInternal
}

func getDefaultSeverity(code ErrorCode) ErrorSeverity {
	switch code {
	case ErrInvalidInput, ErrMissingProject, ErrReadOnlyMode, ErrNotFound, ErrProjectNotFound:
		return SeverityLow
	case ErrConfiguration, ErrAuthentication, ErrAccessDenied:
		return SeverityHigh
	case ErrInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
