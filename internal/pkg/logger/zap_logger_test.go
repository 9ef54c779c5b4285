package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core), "test"), logs
}

func TestLogHTTPRequest_LevelByStatus(t *testing.T) {
	tests := []struct {
		status  int
		err     error
		level   zapcore.Level
		message string
	}{
		{http.StatusOK, nil, zapcore.InfoLevel, "Request processed"},
		{http.StatusBadRequest, nil, zapcore.WarnLevel, "Client error"},
		{http.StatusInternalServerError, errors.New("boom"), zapcore.ErrorLevel, "Server error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			zl, logs := newObservedLogger()
			zl.LogHTTPRequest(nil, http.MethodGet, "/me", "127.0.0.1", "u1", "req-1", tt.status, time.Millisecond, tt.err)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.message, entry.Message)
			assert.Equal(t, int64(tt.status), entry.ContextMap()["status"])
		})
	}
}

func TestZapEchoMiddleware(t *testing.T) {
	zl, logs := newObservedLogger()
	e := echo.New()
	e.Use(ZapEchoMiddleware(zl))
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/missing?x=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/missing?x=1", fields["path"])
	assert.Equal(t, "anonymous", fields["user_id"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestMasked(t *testing.T) {
	assert.Equal(t, "********9012", Masked("aadhar", "123456789012").String)
	assert.Equal(t, "***", Masked("aadhar", "123").String)
}
