package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig holds database instrumentation settings.
type DBConfig struct {
	Tracing    bool
	Metrics    bool
	LogFullSQL bool   // include query variables in spans (dev only)
	DBSystem   string // default: "postgresql"
	// SlowQueryThreshold marks slow statements on spans and in db_slow_query_total (default: 200ms).
	SlowQueryThreshold time.Duration
	// PoolStatsInterval is how often connection pool stats are sampled (default: 15s).
	PoolStatsInterval time.Duration
}

func (c DBConfig) withDefaults() DBConfig {
	if c.DBSystem == "" {
		c.DBSystem = "postgresql"
	}
	if c.SlowQueryThreshold == 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
	if c.PoolStatsInterval == 0 {
		c.PoolStatsInterval = 15 * time.Second
	}
	return c
}

// DBMetrics holds the database metric instruments.
type DBMetrics struct {
	poolConnections    *Gauge
	poolConnectionsMax *Gauge
	queryTotal         *Counter
	queryDuration      *Histogram
	slowQueryTotal     *Counter
	slowQueryThreshold time.Duration
}

// NewDBMetrics creates the database metric instruments on meter.
func NewDBMetrics(meter metric.Meter, slowQueryThreshold time.Duration) (*DBMetrics, error) {
	m := &DBMetrics{slowQueryThreshold: slowQueryThreshold}
	var err error
	if m.poolConnections, err = NewGauge(meter, "db_pool_connections", "Connections in the pool by state", "{connection}"); err != nil {
		return nil, err
	}
	if m.poolConnectionsMax, err = NewGauge(meter, "db_pool_connections_max", "Maximum open connections", "{connection}"); err != nil {
		return nil, err
	}
	if m.queryTotal, err = NewCounter(meter, "db_query_total", "Database statements by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Statements slower than the threshold by table", "{query}"); err != nil {
		return nil, err
	}
	m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database statement latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordQuery records one statement.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "OTHER"
	}
	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))
	if duration > m.slowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// RecordPoolStats records the connection pool state.
func (m *DBMetrics) RecordPoolStats(ctx context.Context, stats sql.DBStats) {
	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// DBInstrumentation is a GORM plugin that times every statement, annotates
// the active span and feeds DBMetrics. Tracing spans themselves come from otelgorm.
type DBInstrumentation struct {
	cfg     DBConfig
	metrics *DBMetrics
	logger  *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDBInstrumentation creates the plugin. metrics may be nil.
func NewDBInstrumentation(cfg DBConfig, metrics *DBMetrics, logger *zap.Logger) *DBInstrumentation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBInstrumentation{
		cfg:     cfg.withDefaults(),
		metrics: metrics,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Name implements gorm.Plugin.
func (p *DBInstrumentation) Name() string {
	return "supplements:db_instrumentation"
}

type dbStartTimeKey struct{}

// Initialize implements gorm.Plugin.
func (p *DBInstrumentation) Initialize(db *gorm.DB) error {
	if p.cfg.Tracing {
		opts := []otelgorm.Option{otelgorm.WithDBName(p.cfg.DBSystem)}
		if !p.cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	before := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, dbStartTimeKey{}, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) { p.after(tx, operation) }
	}

	cb := db.Callback()
	registrations := []struct {
		name   string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
		op     string
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register, "INSERT"},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register, "SELECT"},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register, "UPDATE"},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register, "DELETE"},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register, ""},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register, ""},
	}
	for _, r := range registrations {
		if err := r.before("db_instrumentation:before_"+r.name, before); err != nil {
			return err
		}
		if err := r.after("db_instrumentation:after_"+r.name, after(r.op)); err != nil {
			return err
		}
	}

	p.logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", p.cfg.Tracing),
		zap.Bool("metrics", p.metrics != nil),
		zap.Duration("slow_query_threshold", p.cfg.SlowQueryThreshold),
	)
	return nil
}

func (p *DBInstrumentation) after(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	if operation == "" {
		operation = detectOperationType(tx.Statement.SQL.String())
	}

	var elapsed time.Duration
	if start, ok := ctx.Value(dbStartTimeKey{}).(time.Time); ok {
		elapsed = time.Since(start)
	}
	slow := elapsed > p.cfg.SlowQueryThreshold

	if p.metrics != nil {
		p.metrics.RecordQuery(ctx, operation, tx.Statement.Table, elapsed)
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}
	if slow {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

// StartPoolStatsCollection samples sqlDB pool stats until Stop or ctx ends.
func (p *DBInstrumentation) StartPoolStatsCollection(ctx context.Context, sqlDB *sql.DB) {
	if p.metrics == nil || sqlDB == nil {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.cfg.PoolStatsInterval)
		defer ticker.Stop()

		p.metrics.RecordPoolStats(ctx, sqlDB.Stats())
		for {
			select {
			case <-ticker.C:
				p.metrics.RecordPoolStats(ctx, sqlDB.Stats())
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends pool stats collection. Safe to call multiple times.
func (p *DBInstrumentation) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		p.wg.Wait()
	})
}

// RegisterDBInstrumentation installs the plugin on db. Metrics are created
// only when meterProvider is enabled.
func RegisterDBInstrumentation(db *gorm.DB, meterProvider *MeterProvider, cfg DBConfig, logger *zap.Logger) (*DBInstrumentation, error) {
	cfg = cfg.withDefaults()
	var metrics *DBMetrics
	if cfg.Metrics && meterProvider != nil && meterProvider.IsEnabled() {
		var err error
		metrics, err = NewDBMetrics(meterProvider.Meter("db.client"), cfg.SlowQueryThreshold)
		if err != nil {
			return nil, err
		}
	}
	plugin := NewDBInstrumentation(cfg, metrics, logger)
	if err := db.Use(plugin); err != nil {
		return nil, err
	}
	return plugin, nil
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
