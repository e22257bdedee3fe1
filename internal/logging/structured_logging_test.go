package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	t.Run("creates JSON logger with proper configuration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		logger.Info("dataset loaded",
			slog.String("component", "kpistore"),
			slog.Int("rows", 42))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"dataset loaded"`)
		assert.Contains(t, output, `"component":"kpistore"`)
		assert.Contains(t, output, `"rows":42`)
		assert.Contains(t, output, `"time":`)
	})

	t.Run("respects log level configuration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warning message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warning message")
	})
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		level, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, level, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerHelpers(t *testing.T) {
	t.Run("LogError creates structured error log", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogError(logger, "failed to load dataset", assert.AnError,
			slog.String("source", "kpis.csv"),
			slog.String("component", "ingest"))

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to load dataset"`)
		assert.Contains(t, output, `"error":"assert.AnError general error for testing"`)
		assert.Contains(t, output, `"source":"kpis.csv"`)
	})

	t.Run("LogError tolerates a nil error and a nil logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogError(logger, "rate limit exceeded", nil)
		LogError(nil, "ignored", errors.New("boom"))

		assert.Contains(t, buf.String(), `"msg":"rate limit exceeded"`)
		assert.NotContains(t, buf.String(), `"error"`)
	})

	t.Run("LogOperation skips zero durations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogOperation(logger, "kpi_dataset_imported",
			slog.String("source", "kpis.xlsx"),
			slog.Int("rows", 150),
			slog.Duration("duration", 0))

		output := buf.String()
		assert.Contains(t, output, `"msg":"kpi_dataset_imported"`)
		assert.Contains(t, output, `"source":"kpis.xlsx"`)
		assert.Contains(t, output, `"rows":150`)
		assert.NotContains(t, output, `"duration"`)
	})

	t.Run("LogHTTPRequest logs request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogHTTPRequest(logger, "GET", "/api/kpi/value.json", 200, 1.5,
			slog.String("user_agent", "test-client"))

		output := buf.String()
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/api/kpi/value.json"`)
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"duration_ms":1.5`)
		assert.Contains(t, output, `"user_agent":"test-client"`)
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("stores and retrieves logger from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		ctx := WithLogger(context.Background(), logger)
		FromContext(ctx).Info("test from context")

		assert.Contains(t, buf.String(), "test from context")
	})

	t.Run("returns default logger when not in context", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
		logger.Info("test message")
	})

	t.Run("carries the request id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")
		assert.Equal(t, "req-1", RequestIDFromContext(ctx))
		assert.Empty(t, RequestIDFromContext(context.Background()))
	})
}
