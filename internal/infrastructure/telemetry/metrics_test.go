package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

// newManualMeter returns a meter backed by a reader the test can collect on demand
func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

// collect gathers all metrics and indexes them by name
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func floatSum(t *testing.T, m metricdata.Metrics) float64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[float64])
	require.True(t, ok, "metric %s is not a float64 sum", m.Name)
	var total float64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func intSum(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	cfg := telemetry.MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ExportInterval:    60 * time.Second,
		ServiceName:       "test-service",
	}

	mp, err := telemetry.NewMeterProvider(ctx, cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, mp)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestNewMeterProvider_Enabled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		ExportInterval:    time.Second,
		ServiceName:       "test-service",
		Insecure:          true,
	}, logger)
	require.NoError(t, err)
	assert.True(t, mp.IsEnabled())

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = mp.Shutdown(shutdownCtx)
}

func TestCounter_Add(t *testing.T) {
	reader, provider := newManualMeter(t)
	ctx := context.Background()

	counter, err := telemetry.NewCounter(provider.Meter("test"), "test_counter", "A test counter", "{items}")
	require.NoError(t, err)

	counter.Inc(ctx)
	counter.Add(ctx, 4, attribute.String("kind", "x"))

	assert.Equal(t, int64(5), intSum(t, collect(t, reader)["test_counter"]))
}

func TestFloatCounter_IgnoresNonPositive(t *testing.T) {
	reader, provider := newManualMeter(t)
	ctx := context.Background()

	counter, err := telemetry.NewFloatCounter(provider.Meter("test"), "test_float_counter", "A test counter", "{units}")
	require.NoError(t, err)

	counter.Add(ctx, 1.5)
	counter.Add(ctx, 0)
	counter.Add(ctx, -3)
	counter.Add(ctx, 2.25)

	assert.InDelta(t, 3.75, floatSum(t, collect(t, reader)["test_float_counter"]), 1e-9)
}

func TestHistogram_CustomBoundaries(t *testing.T) {
	reader, provider := newManualMeter(t)
	ctx := context.Background()

	h, err := telemetry.NewHistogram(provider.Meter("test"), telemetry.HistogramOpts{
		Name:        "test_profit",
		Description: "Profit per sale",
		Unit:        "GTQ",
		Boundaries:  telemetry.ProfitBuckets,
	})
	require.NoError(t, err)

	h.Record(ctx, -20)
	h.Record(ctx, 75)
	h.RecordDuration(ctx, 250*time.Millisecond)

	hist, ok := collect(t, reader)["test_profit"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(3), hist.DataPoints[0].Count)
	assert.Equal(t, telemetry.ProfitBuckets, hist.DataPoints[0].Bounds)
}

func TestGauge_Record(t *testing.T) {
	reader, provider := newManualMeter(t)
	ctx := context.Background()

	g, err := telemetry.NewGauge(provider.Meter("test"), "test_gauge", "A test gauge", "{products}")
	require.NoError(t, err)
	fg, err := telemetry.NewFloatGauge(provider.Meter("test"), "test_float_gauge", "A test gauge", "GTQ")
	require.NoError(t, err)

	g.Record(ctx, 3)
	g.Record(ctx, 7)
	fg.Record(ctx, 1234.5)

	metrics := collect(t, reader)
	gauge, ok := metrics["test_gauge"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)

	floatGauge, ok := metrics["test_float_gauge"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	assert.Equal(t, 1234.5, floatGauge.DataPoints[0].Value)
}

func TestCommonAttributes(t *testing.T) {
	assert.Equal(t, "db.pool.state", string(telemetry.AttrDBState))
	assert.Equal(t, "product_id", string(telemetry.AttrProductID))
	assert.Equal(t, "movement_kind", string(telemetry.AttrMovementKind))
	assert.Equal(t, "rejection_code", string(telemetry.AttrRejectionCode))
}
