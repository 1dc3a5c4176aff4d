// Package telemetry exports traces, metrics and logs over OTLP and carries
// the costing engine's business and database instruments.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// ServiceVersion is reported as service.version on every exported signal
const ServiceVersion = "1.0.0"

const defaultExportInterval = time.Minute

// MetricsConfig controls the OTLP metric pipeline
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ExportInterval    time.Duration
	ServiceName       string
	Insecure          bool
}

// MeterProvider owns the SDK meter provider when metrics are exported.
// Disabled, it hands out meters from the global no-op provider.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider builds a periodic OTLP pipeline and installs it globally
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		logger.Info("Metrics export disabled")
		return mp, nil
	}

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("Metrics export enabled",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// Meter returns a named meter
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// IsEnabled reports whether metrics are exported
func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// ForceFlush exports everything collected so far
func (mp *MeterProvider) ForceFlush(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.ForceFlush(ctx)
}

// Shutdown flushes and stops the pipeline, waiting at most ten seconds
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	mp.logger.Info("Metrics pipeline stopped")
	return nil
}
