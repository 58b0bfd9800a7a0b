package errors

import (
	"context"
	stderrors "errors"
	"math"
	"net"
	"strings"
	"time"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
	"go.uber.org/zap"
)

// DefaultMaxDelay caps a single backoff sleep
const DefaultMaxDelay = 60 * time.Second

// RetryableFunc represents a function that can be retried
type RetryableFunc func() error

// WaitFunc sleeps for d or until ctx is done
type WaitFunc func(ctx context.Context, d time.Duration) error

// RetryConfig defines retry configuration for operations.
// MaxRetries counts retries after the first attempt, so a call makes at most
// MaxRetries+1 attempts.
type RetryConfig struct {
	MaxRetries     int
	BackoffFactor  time.Duration
	MaxDelay       time.Duration
	RetryCondition func(error) bool
	Wait           WaitFunc
	Logger         *logging.Logger // nil discards retry logs
}

// DefaultRetryConfig returns the retry configuration used when none is configured
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		BackoffFactor:  500 * time.Millisecond,
		MaxDelay:       DefaultMaxDelay,
		RetryCondition: DefaultRetryCondition,
		Wait:           SleepContext,
	}
}

// GitLabRetryConfig returns a retry configuration for GitLab API calls
func GitLabRetryConfig(maxRetries int, backoffFactor time.Duration) RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = maxRetries
	cfg.BackoffFactor = backoffFactor
	cfg.RetryCondition = GitLabRetryCondition
	return cfg
}

// DefaultRetryCondition determines if an error should be retried
func DefaultRetryCondition(err error) bool {
	if err == nil {
		return false
	}

	if appErr, ok := AsAppError(err); ok {
		return appErr.IsRetryable()
	}

	return IsTemporaryError(err)
}

// GitLabRetryCondition retries rate limiting, server errors and network failures only
func GitLabRetryCondition(err error) bool {
	if err == nil {
		return false
	}

	if appErr, ok := AsAppError(err); ok {
		switch appErr.Code {
		case ErrTransientRequest:
			return true
		case ErrAuthentication, ErrNotFound, ErrRequestFailed, ErrCancelled:
			return false
		default:
			return appErr.IsRetryable()
		}
	}

	return IsTemporaryError(err)
}

// IsTemporaryError checks if an error looks like a transient network failure
func IsTemporaryError(err error) bool {
	if err == nil {
		return false
	}

	if stderrors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	temporaryPatterns := []string{
		"timeout",
		"connection refused",
		"connection reset",
		"network is unreachable",
		"temporary failure",
		"eof",
		"service unavailable",
		"too many requests",
		"rate limit",
		"502 bad gateway",
		"503 service unavailable",
		"504 gateway timeout",
	}

	for _, pattern := range temporaryPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}

// SleepContext waits for d, returning early with ctx.Err() on cancellation
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryWithContext executes fn until it succeeds, fails permanently, or the
// attempt budget is spent. The returned error is the last one seen, tagged
// with the number of attempts made.
func RetryWithContext(ctx context.Context, fn RetryableFunc, config RetryConfig) error {
	maxAttempts := config.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	condition := config.RetryCondition
	if condition == nil {
		condition = DefaultRetryCondition
	}
	wait := config.Wait
	if wait == nil {
		wait = SleepContext
	}
	log := retryLogger(config)

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return NewCancelledError("Operation cancelled", ctx.Err()).WithAttempts(attempt - 1)
		}

		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info("Operation succeeded after retry",
					zap.Int("attempt", attempt),
					zap.Int("max_attempts", maxAttempts),
				)
			}
			return nil
		}

		if !condition(err) {
			log.Debug("Error not retryable, giving up",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			return tagAttempts(err, attempt)
		}

		if attempt >= maxAttempts {
			log.Warn("All retry attempts failed",
				zap.Error(err),
				zap.Int("total_attempts", attempt),
			)
			return tagAttempts(err, attempt)
		}

		delay := calculateDelay(attempt-1, config)

		log.Warn("Operation failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("retry_delay", delay),
		)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return NewCancelledError("Operation cancelled during retry", waitErr).WithAttempts(attempt)
		}
	}
}

func retryLogger(config RetryConfig) *logging.Logger {
	if config.Logger == nil {
		return logging.NewNopLogger()
	}
	return config.Logger
}

// calculateDelay returns BackoffFactor * 2^retryIndex, capped at MaxDelay
func calculateDelay(retryIndex int, config RetryConfig) time.Duration {
	maxDelay := config.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	delay := float64(config.BackoffFactor) * math.Pow(2, float64(retryIndex))
	if delay > float64(maxDelay) {
		return maxDelay
	}
	return time.Duration(delay)
}

func tagAttempts(err error, attempts int) error {
	if appErr, ok := err.(*AppError); ok {
		return appErr.WithAttempts(attempts)
	}
	return NewErrorWithCause(CodeOf(err), "Operation failed", err).WithAttempts(attempts)
}

// RetryableOperation wraps a named operation with automatic retry logic
type RetryableOperation struct {
	Name   string
	Config RetryConfig
}

// NewRetryableOperation creates a retryable operation with the given config
func NewRetryableOperation(name string, config RetryConfig) *RetryableOperation {
	return &RetryableOperation{
		Name:   name,
		Config: config,
	}
}

// Execute runs the operation with retry logic
func (op *RetryableOperation) Execute(ctx context.Context, fn RetryableFunc) error {
	err := RetryWithContext(ctx, fn, op.Config)
	if err != nil {
		retryLogger(op.Config).Debug("Retryable operation failed",
			zap.String("operation", op.Name),
			zap.Error(err),
		)
	}
	return err
}
