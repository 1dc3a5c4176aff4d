package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys shared by the business and database instruments
var (
	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.table")
	AttrDBState     = attribute.Key("db.pool.state")

	AttrProductID     = attribute.Key("product_id")
	AttrMovementKind  = attribute.Key("movement_kind")
	AttrRejectionCode = attribute.Key("rejection_code")
)

var (
	// ProfitBuckets spans per-sale profit in GTQ; the negative buckets catch sales below cost
	ProfitBuckets = []float64{-500, -100, -10, 0, 10, 50, 100, 250, 500, 1000, 5000}

	// DBDurationBuckets spans statement latency in seconds
	DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
)

// Counter counts events such as receipts or rejected sales
type Counter struct {
	c metric.Int64Counter
}

// NewCounter registers an int64 counter on meter
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &Counter{c: c}, nil
}

// Add increments by n
func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.c.Add(ctx, n, metric.WithAttributes(attrs...))
}

// Inc increments by one
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// FloatCounter accumulates fractional quantities and GTQ amounts
type FloatCounter struct {
	c metric.Float64Counter
}

// NewFloatCounter registers a float64 counter on meter
func NewFloatCounter(meter metric.Meter, name, description, unit string) (*FloatCounter, error) {
	c, err := meter.Float64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &FloatCounter{c: c}, nil
}

// Add accumulates v. Zero and negative values are dropped since counters only grow.
func (c *FloatCounter) Add(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	if v <= 0 {
		return
	}
	c.c.Add(ctx, v, metric.WithAttributes(attrs...))
}

// HistogramOpts describes a histogram; empty Boundaries keep the SDK defaults
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

// Histogram records distributions such as profit per sale or query latency
type Histogram struct {
	h metric.Float64Histogram
}

// NewHistogram registers a float64 histogram on meter
func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	hopts := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(opts.Boundaries) > 0 {
		hopts = append(hopts, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	h, err := meter.Float64Histogram(opts.Name, hopts...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", opts.Name, err)
	}
	return &Histogram{h: h}, nil
}

// Record adds one observation
func (h *Histogram) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.h.Record(ctx, v, metric.WithAttributes(attrs...))
}

// RecordDuration adds d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

// Gauge reports point-in-time counts such as low-stock products
type Gauge struct {
	g metric.Int64Gauge
}

// NewGauge registers an int64 gauge on meter
func NewGauge(meter metric.Meter, name, description, unit string) (*Gauge, error) {
	g, err := meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("gauge %s: %w", name, err)
	}
	return &Gauge{g: g}, nil
}

// Record sets the current value
func (g *Gauge) Record(ctx context.Context, v int64, attrs ...attribute.KeyValue) {
	g.g.Record(ctx, v, metric.WithAttributes(attrs...))
}

// FloatGauge reports point-in-time amounts such as inventory value in GTQ
type FloatGauge struct {
	g metric.Float64Gauge
}

// NewFloatGauge registers a float64 gauge on meter
func NewFloatGauge(meter metric.Meter, name, description, unit string) (*FloatGauge, error) {
	g, err := meter.Float64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("gauge %s: %w", name, err)
	}
	return &FloatGauge{g: g}, nil
}

// Record sets the current value
func (g *FloatGauge) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	g.g.Record(ctx, v, metric.WithAttributes(attrs...))
}
