package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
		"bogus":   INFO,
		"":        INFO,
	}
	for input, want := range tests {
		assert.Equal(t, want, GetLogLevel(input), input)
	}
}

func TestToolHelpers_CarryToolFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.ToolInfo("get_issue", "inv-1", "tool finished", zap.Int("items", 3))
	logger.ToolError("get_issue", "inv-2", "tool failed", errors.New("boom"))

	entries := logs.All()
	assert.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "get_issue", first["tool"])
	assert.Equal(t, "inv-1", first["invocation_id"])
	assert.Equal(t, int64(3), first["items"])

	second := entries[1].ContextMap()
	assert.Equal(t, "inv-2", second["invocation_id"])
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).With(zap.String("project", "group/app"))

	logger.Info("resolved")
	logger.Debug("dropped below level")

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "group/app", logs.All()[0].ContextMap()["project"])
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		logger.ToolWarn("t", "id", "ignored")
		logger.Sync()
	})
}
