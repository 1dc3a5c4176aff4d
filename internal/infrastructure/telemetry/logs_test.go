package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingProcessor struct {
	mu     sync.Mutex
	bodies []string
}

func (p *recordingProcessor) OnEmit(_ context.Context, r *sdklog.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, r.Body().AsString())
	return nil
}

func (p *recordingProcessor) Enabled(context.Context, sdklog.EnabledParameters) bool { return true }

func (p *recordingProcessor) Shutdown(context.Context) error   { return nil }
func (p *recordingProcessor) ForceFlush(context.Context) error { return nil }

func (p *recordingProcessor) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.bodies...)
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.Nil(t, lp.GetLoggerProvider())
	assert.NoError(t, lp.ForceFlush(context.Background()))
	assert.NoError(t, lp.Shutdown(context.Background()))
	assert.IsType(t, zapcore.NewNopCore(), NewZapOTELCore(ZapBridgeConfig{LoggerProvider: lp}))
}

func TestBridgeLogger_DisabledReturnsBase(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, BridgeLogger(base, nil, "supplements", zapcore.InfoLevel))
}

func TestBridgeLogger_TeesToBothOutputs(t *testing.T) {
	proc := &recordingProcessor{}
	lp := &LoggerProvider{
		provider: sdklog.NewLoggerProvider(sdklog.WithProcessor(proc)),
		logger:   zap.NewNop(),
		config:   LogsConfig{Enabled: true, ServiceName: "supplements"},
	}
	defer func() { _ = lp.Shutdown(context.Background()) }()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := BridgeLogger(zap.New(core), lp, "supplements", zapcore.WarnLevel)

	logger.Info("purchase received")
	logger.Warn("low stock detected", zap.String("product_id", "p-1"))

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, []string{"low stock detected"}, proc.messages())
}
