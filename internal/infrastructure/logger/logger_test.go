package logger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestNew(t *testing.T) {
	for _, cfg := range []*Config{
		DefaultConfig(),
		{Level: "warn", Format: "json", Output: "stderr"},
		{Level: "error", Format: "json", Output: filepath.Join(t.TempDir(), "app.log")},
	} {
		log, err := New(cfg)
		require.NoError(t, err)
		require.NotNil(t, log)
		log.Info("hello")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestRequestIDContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), base, "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))

	L(ctx).Info("sale completed")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-42", logs.All()[0].ContextMap()["request_id"])

	assert.Empty(t, GetRequestID(context.Background()))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithTraceContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	assert.Same(t, base, WithTraceContext(context.Background(), base))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	WithTraceContext(ctx, base).Info("traced")
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/api/v1/products/:id", func(c *gin.Context) {
		assert.Equal(t, "abc", GetRequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1?x=1", nil)
	req.Header.Set(RequestIDHeader, "abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/api/v1/products/:id", entries[0].ContextMap()["route"])
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(50*time.Millisecond))
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 0, logs.Len(), "fast queries are not logged at warn")

	gl.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	assert.Equal(t, 1, logs.FilterMessage("SQL slow").FilterLevelExact(zapcore.WarnLevel).Len())

	gl.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	gl.Trace(ctx, time.Now(), sql, gorm.ErrDuplicatedKey)
	gl.Trace(ctx, time.Now(), sql, errors.New("pq: canceling statement due to lock timeout (55P03)"))
	gl.Trace(ctx, time.Now(), sql, context.Canceled)
	assert.Equal(t, 4, logs.FilterMessage("SQL rejected").FilterLevelExact(zapcore.DebugLevel).Len())
	assert.Equal(t, 0, logs.FilterMessage("SQL failed").Len())

	gl.Trace(ctx, time.Now(), sql, errors.New("deadlock detected"))
	assert.Equal(t, 1, logs.FilterMessage("SQL failed").FilterLevelExact(zapcore.ErrorLevel).Len())

	gl.LogMode(gormlogger.Info).Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 1, logs.FilterMessage("SQL").Len())

	logs.TakeAll()
	gl.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), sql, errors.New("deadlock detected"))
	assert.Equal(t, 0, logs.Len())
}

func TestExpectedDBError(t *testing.T) {
	assert.True(t, expectedDBError(fmt.Errorf("find product: %w", gorm.ErrRecordNotFound)))
	assert.True(t, expectedDBError(context.DeadlineExceeded))
	assert.False(t, expectedDBError(errors.New("connection refused")))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
}
