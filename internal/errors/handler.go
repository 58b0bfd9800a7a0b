package errors

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
	"go.uber.org/zap"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Code      ErrorCode              `json:"code"`
	Details   string                 `json:"details,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Retryable bool                   `json:"retryable,omitempty"`
}

// Handler provides centralized error handling for the HTTP surface
type Handler struct {
	// Include sensitive details in responses (dev mode)
	IncludeSensitiveDetails bool
}

// NewHandler creates a new error handler with default configuration
func NewHandler() *Handler {
	return &Handler{}
}

// HandleError processes an error and returns an appropriate HTTP response
func (h *Handler) HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	appErr := h.toAppError(err)
	requestID := c.Get("X-Request-ID")

	h.logError(appErr, requestID, c)

	response := ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: requestID,
		Timestamp: appErr.Timestamp.UTC().Format(time.RFC3339),
		Retryable: appErr.IsRetryable(),
	}

	status := HTTPStatus(appErr.Code)
	if h.IncludeSensitiveDetails || status < 500 {
		response.Details = appErr.Details
		response.Context = appErr.Context
	}

	if appErr.IsRetryable() {
		c.Set("Retry-After", "30")
	}

	return c.Status(status).JSON(response)
}

// toAppError converts any error to an AppError
func (h *Handler) toAppError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		code := ErrInternal
		switch {
		case fiberErr.Code == http.StatusNotFound:
			code = ErrNotFound
		case fiberErr.Code < 500:
			code = ErrInvalidInput
		}
		return NewErrorWithCause(code, fiberErr.Message, err)
	}

	return NewErrorWithCause(ErrInternal, "Internal server error", err)
}

// HTTPStatus maps an error code to the status served on the HTTP surface
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrInvalidInput, ErrMissingProject:
		return http.StatusBadRequest
	case ErrAuthentication:
		return http.StatusUnauthorized
	case ErrAccessDenied, ErrReadOnlyMode:
		return http.StatusForbidden
	case ErrNotFound, ErrProjectNotFound:
		return http.StatusNotFound
	case ErrTransientRequest, ErrConfiguration:
		return http.StatusServiceUnavailable
	case ErrRequestFailed, ErrTransform:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) logError(appErr *AppError, requestID string, c *fiber.Ctx) {
	fields := []zap.Field{
		zap.String("error_code", string(appErr.Code)),
		zap.String("severity", string(appErr.Severity)),
		zap.Bool("retryable", appErr.IsRetryable()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	}
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.Error(appErr.Cause))
	}

	switch appErr.Severity {
	case SeverityLow:
		logging.Info(appErr.Message, fields...)
	case SeverityMedium:
		logging.Warn(appErr.Message, fields...)
	default:
		logging.Error(appErr.Message, fields...)
	}
}

// FiberErrorHandler creates a Fiber-compatible error handler
func (h *Handler) FiberErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return h.HandleError(c, err)
	}
}
