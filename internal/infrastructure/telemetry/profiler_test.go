package telemetry_test

import (
	"context"
	"errors"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  telemetry.ProfilerConfig
		want string
	}{
		{"missing server", telemetry.ProfilerConfig{Enabled: true, ApplicationName: "svc"}, "server address"},
		{"missing name", telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, "application name"},
		{"unknown type", telemetry.ProfilerConfig{
			Enabled:         true,
			ServerAddress:   "http://localhost:4040",
			ApplicationName: "svc",
			ProfileTypes:    []string{"cpu", "heap"},
		}, `"heap"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := telemetry.NewProfiler(tt.cfg, zap.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProfileMovement_SetsLabels(t *testing.T) {
	var operation, kind string
	var ok bool
	err := telemetry.ProfileMovement(context.Background(), "purchase.receive", telemetry.MovementPurchase, func(ctx context.Context) error {
		operation, ok = pprof.Label(ctx, telemetry.ProfilingLabelOperation)
		kind, _ = pprof.Label(ctx, telemetry.ProfilingLabelMovementKind)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "purchase.receive", operation)
	assert.Equal(t, "purchase", kind)
}

func TestProfileMovement_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := telemetry.ProfileMovement(context.Background(), "sale.create", telemetry.MovementSale, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithProfilingLabels_Sanitizes(t *testing.T) {
	labels := map[string]string{
		"Sale-ID":     "9f1c",
		"Route Name":  "/sales",
		"empty":       "",
		"long_value":  strings.Repeat("x", 300),
		"movement$ki": "sale",
	}
	telemetry.WithProfilingLabels(context.Background(), labels, func(ctx context.Context) {
		_, ok := pprof.Label(ctx, "sale_id")
		assert.False(t, ok, "high-cardinality keys are dropped")
		route, ok := pprof.Label(ctx, "route_name")
		assert.True(t, ok)
		assert.Equal(t, "/sales", route)
		_, ok = pprof.Label(ctx, "empty")
		assert.False(t, ok)
		long, _ := pprof.Label(ctx, "long_value")
		assert.Len(t, long, telemetry.MaxLabelValueLength)
		kind, _ := pprof.Label(ctx, "movementki")
		assert.Equal(t, "sale", kind)
	})
	assert.Len(t, labels, 5, "caller map untouched")
}

func TestWithProfilingLabels_NoLabels(t *testing.T) {
	called := false
	telemetry.WithProfilingLabels(context.Background(), nil, func(ctx context.Context) {
		called = true
		_, ok := pprof.Label(ctx, telemetry.ProfilingLabelOperation)
		assert.False(t, ok)
	})
	assert.True(t, called)
}
