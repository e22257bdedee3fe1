package logging

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeClose(t *testing.T) {
	t.Run("closes response body safely with error logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		SafeCloseWithLogging(resp.Body, logger, "test_operation")
		assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "test_operation")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"test_operation"`)
	})

	t.Run("nil closer is ignored", func(t *testing.T) {
		SafeCloseWithLogging(nil, nil, "noop")
	})
}

func TestSafeRollback(t *testing.T) {
	t.Run("logs rollback failures", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTransaction{rollbackErr: assert.AnError}, logger, "update_value")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to rollback transaction"`)
		assert.Contains(t, output, `"operation":"update_value"`)
	})

	t.Run("ignores rollback after commit", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTransaction{rollbackErr: fmt.Errorf("wrapped: %w", sql.ErrTxDone)}, logger, "update_value")
		assert.Empty(t, buf.String())
	})

	t.Run("handles successful rollback silently", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTransaction{}, logger, "update_value")
		assert.Empty(t, buf.String())
	})
}

func TestHandleDeferredError(t *testing.T) {
	t.Run("surfaces deferred errors when the function succeeded", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		testFunc := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "close_export")
			return nil
		}

		err := testFunc()
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "close_export")
		assert.Contains(t, buf.String(), `"msg":"deferred operation failed"`)
	})

	t.Run("preserves original error when deferred operation also fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)
		original := fmt.Errorf("write failed")

		testFunc := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "close_export")
			return original
		}

		assert.Same(t, original, testFunc())
		assert.Contains(t, buf.String(), `"msg":"deferred operation failed"`)
	})
}

type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

type mockTransaction struct {
	rollbackErr error
}

func (m *mockTransaction) Rollback() error {
	return m.rollbackErr
}
