package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the logging level
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

const serviceName = "gitlab-mcp"

// Logger wraps zap.Logger to provide a consistent interface
type Logger struct {
	zap   *zap.Logger
	level LogLevel
}

// NewLogger creates a new Zap-based logger. Output goes to stderr because
// stdout carries the MCP stdio stream.
func NewLogger(level LogLevel, component string) *Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(logLevelToZap(level))
	config.Development = false
	config.Encoding = "json"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config.InitialFields = map[string]interface{}{
		"component": component,
		"service":   serviceName,
	}

	zapLogger, err := config.Build()
	if err != nil {
		zapLogger, _ = zap.NewDevelopment()
	}

	return &Logger{
		zap:   zapLogger,
		level: level,
	}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{zap: zap.NewNop(), level: ERROR}
}

// FromZap wraps an existing zap logger, mainly for tests using zaptest/observer
func FromZap(z *zap.Logger) *Logger {
	return &Logger{zap: z, level: DEBUG}
}

// GetLogLevel parses a log level string
func GetLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

func logLevelToZap(level LogLevel) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...), level: l.level}
}

// Zap exposes the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

func (l *Logger) Debug(message string, fields ...zap.Field) {
	l.zap.Debug(message, fields...)
}

func (l *Logger) Info(message string, fields ...zap.Field) {
	l.zap.Info(message, fields...)
}

func (l *Logger) Warn(message string, fields ...zap.Field) {
	l.zap.Warn(message, fields...)
}

func (l *Logger) Error(message string, fields ...zap.Field) {
	l.zap.Error(message, fields...)
}

// Tool-scoped logging helpers for tracing a single invocation
func (l *Logger) ToolInfo(tool, invocationID, message string, fields ...zap.Field) {
	l.zap.Info(message, toolFields(tool, invocationID, fields)...)
}

func (l *Logger) ToolWarn(tool, invocationID, message string, fields ...zap.Field) {
	l.zap.Warn(message, toolFields(tool, invocationID, fields)...)
}

func (l *Logger) ToolError(tool, invocationID, message string, err error, fields ...zap.Field) {
	allFields := append(toolFields(tool, invocationID, fields), zap.Error(err))
	l.zap.Error(message, allFields...)
}

func toolFields(tool, invocationID string, fields []zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("tool", tool),
		zap.String("invocation_id", invocationID),
	}, fields...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() {
	_ = l.zap.Sync()
}

// Global logger instance
var defaultLogger *Logger

// InitLogger initializes the global logger
func InitLogger(level string, component string) {
	defaultLogger = NewLogger(GetLogLevel(level), component)
}

func Debug(message string, fields ...zap.Field) {
	if defaultLogger != nil {
		defaultLogger.Debug(message, fields...)
	}
}

func Info(message string, fields ...zap.Field) {
	if defaultLogger != nil {
		defaultLogger.Info(message, fields...)
	}
}

func Warn(message string, fields ...zap.Field) {
	if defaultLogger != nil {
		defaultLogger.Warn(message, fields...)
	}
}

func Error(message string, fields ...zap.Field) {
	if defaultLogger != nil {
		defaultLogger.Error(message, fields...)
	}
}

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	return defaultLogger
}

func init() {
	if defaultLogger == nil {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		InitLogger(level, "GITLAB-MCP")
	}
}
