package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type layerRow struct {
	ID                int64 `gorm:"primaryKey"`
	QuantityRemaining int64
}

func (layerRow) TableName() string { return "cost_layers" }

func openInstrumentedDB(t *testing.T, plugin *telemetry.DBInstrumentation) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&layerRow{}))
	require.NoError(t, db.Use(plugin))
	return db
}

func TestDBInstrumentation_RecordsQueryMetrics(t *testing.T) {
	reader, provider := newManualMeter(t)
	metrics, err := telemetry.NewDBMetrics(provider.Meter("db.client"), time.Hour)
	require.NoError(t, err)

	plugin := telemetry.NewDBInstrumentation(telemetry.DBConfig{Metrics: true}, metrics, zap.NewNop())
	db := openInstrumentedDB(t, plugin)
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&layerRow{QuantityRemaining: 5}).Error)
	var rows []layerRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	require.NoError(t, db.WithContext(ctx).Exec("UPDATE cost_layers SET quantity_remaining = 4").Error)

	collected := collect(t, reader)
	assert.Equal(t, int64(3), intSum(t, collected["db_query_total"]))
	_, slow := collected["db_slow_query_total"]
	assert.False(t, slow)
}

func TestDBInstrumentation_SlowQueryCounted(t *testing.T) {
	reader, provider := newManualMeter(t)
	metrics, err := telemetry.NewDBMetrics(provider.Meter("db.client"), -1)
	require.NoError(t, err)

	db := openInstrumentedDB(t, telemetry.NewDBInstrumentation(telemetry.DBConfig{Metrics: true}, metrics, nil))
	var rows []layerRow
	require.NoError(t, db.WithContext(context.Background()).Find(&rows).Error)

	assert.Equal(t, int64(1), intSum(t, collect(t, reader)["db_slow_query_total"]))
}

func TestDBInstrumentation_AnnotatesActiveSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	db := openInstrumentedDB(t, telemetry.NewDBInstrumentation(telemetry.DBConfig{SlowQueryThreshold: -1}, nil, nil))

	ctx, span := tp.Tracer("test").Start(context.Background(), "sale.create")
	var rows []layerRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	attrs := map[string]any{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "cost_layers", attrs["db.sql.table"])
	assert.Equal(t, true, attrs["db.slow_query"])
}

func TestDBInstrumentation_PoolStats(t *testing.T) {
	reader, provider := newManualMeter(t)
	metrics, err := telemetry.NewDBMetrics(provider.Meter("db.client"), time.Second)
	require.NoError(t, err)

	plugin := telemetry.NewDBInstrumentation(telemetry.DBConfig{PoolStatsInterval: time.Hour}, metrics, nil)
	db := openInstrumentedDB(t, plugin)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	plugin.StartPoolStatsCollection(context.Background(), sqlDB)
	require.Eventually(t, func() bool {
		_, ok := collect(t, reader)["db_pool_connections"]
		return ok
	}, time.Second, 10*time.Millisecond)

	plugin.Stop()
	plugin.Stop()
}

func TestRegisterDBInstrumentation_MetricsDisabledProvider(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	plugin, err := telemetry.RegisterDBInstrumentation(db, mp, telemetry.DBConfig{Metrics: true}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, plugin)
	assert.Equal(t, "supplements:db_instrumentation", plugin.Name())
}
