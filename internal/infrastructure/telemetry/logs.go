package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsConfig holds logs bridge configuration.
type LogsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ServiceName       string
	Insecure          bool
}

// LoggerProvider wraps the OpenTelemetry LoggerProvider with lifecycle management.
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
	logger   *zap.Logger
	config   LogsConfig
}

// NewLoggerProvider creates and configures a new OpenTelemetry LoggerProvider.
// If logs are disabled, it returns a provider that wraps the no-op global logger.
func NewLoggerProvider(ctx context.Context, cfg LogsConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{
		logger: logger,
		config: cfg,
	}

	if !cfg.Enabled {
		logger.Info("OTEL Logs disabled, using no-op logger provider")
		return lp, nil
	}

	// Create OTLP gRPC exporter for logs
	exporterOpts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlploggrpc.WithInsecure())
	}

	exporter, err := otlploggrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	// Create LoggerProvider with batch processor
	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	// Set global logger provider
	global.SetLoggerProvider(lp.provider)

	logger.Info("OpenTelemetry LoggerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
	)

	return lp, nil
}

// Shutdown gracefully shuts down the logger provider, flushing any pending logs.
// It should be called when the application exits.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		lp.logger.Debug("No logger provider to shutdown (logs disabled)")
		return nil
	}

	lp.logger.Info("Shutting down OpenTelemetry LoggerProvider...")

	// Create a timeout context for shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := lp.provider.Shutdown(shutdownCtx); err != nil {
		lp.logger.Error("Error shutting down logger provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}

	lp.logger.Info("OpenTelemetry LoggerProvider shutdown complete")
	return nil
}

// IsEnabled returns whether OTEL logs are enabled.
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.config.Enabled && lp.provider != nil
}

// ForceFlush immediately exports all logs that have not yet been exported.
// This is useful in tests or when you need to ensure all logs are exported before shutdown.
func (lp *LoggerProvider) ForceFlush(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	return lp.provider.ForceFlush(ctx)
}

// GetLoggerProvider returns the underlying SDK LoggerProvider.
// Returns nil if logs are disabled.
func (lp *LoggerProvider) GetLoggerProvider() *sdklog.LoggerProvider {
	return lp.provider
}

// =============================================================================
// Zap Logger Bridge
// =============================================================================

// ZapBridgeConfig holds configuration for the Zap -> OTEL bridge.
type ZapBridgeConfig struct {
	// ServiceName is used as the logger name in OpenTelemetry
	ServiceName string
	// LoggerProvider is the OpenTelemetry LoggerProvider to use
	LoggerProvider *LoggerProvider
	// Level is the minimum log level to emit
	Level zapcore.Level
}

// NewZapOTELCore creates a new zapcore.Core that bridges Zap logs to OpenTelemetry.
// This core should be combined with existing cores using zapcore.NewTee for
// dual output to both stdout and OTEL.
func NewZapOTELCore(cfg ZapBridgeConfig) zapcore.Core {
	if cfg.LoggerProvider == nil || !cfg.LoggerProvider.IsEnabled() {
		// Return a no-op core if OTEL logs are disabled
		return zapcore.NewNopCore()
	}

	// Build otelzap options
	opts := []otelzap.Option{
		otelzap.WithLoggerProvider(cfg.LoggerProvider.provider),
	}

	// Create the otelzap core
	// The name should be the package/service name for identification
	core := otelzap.NewCore(cfg.ServiceName, opts...)

	// Wrap with level enabler if a specific level is configured
	// The otelzap core itself doesn't have min level, so we wrap it
	if cfg.Level != zapcore.DebugLevel {
		return &levelFilterCore{
			Core:     core,
			minLevel: cfg.Level,
		}
	}

	return core
}

// levelFilterCore wraps a zapcore.Core with level filtering.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

// Enabled implements zapcore.Core.
func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

// Check implements zapcore.Core.
func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

// With implements zapcore.Core.
func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{
		Core:     c.Core.With(fields),
		minLevel: c.minLevel,
	}
}

// BridgeLogger returns base with its output teed into the OTEL logs pipeline.
// base is returned unchanged when the provider is disabled.
func BridgeLogger(base *zap.Logger, lp *LoggerProvider, serviceName string, level zapcore.Level) *zap.Logger {
	if lp == nil || !lp.IsEnabled() {
		return base
	}
	otelCore := NewZapOTELCore(ZapBridgeConfig{
		ServiceName:    serviceName,
		LoggerProvider: lp,
		Level:          level,
	})
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}
