package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger writes GORM output through zap, tagged with the request and trace
// IDs of the statement's context
type GormLogger struct {
	logger        *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the latency above which statements are logged as slow; zero disables it
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:        zapLogger.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface.
// Failures the services turn into domain errors (missing rows, duplicate
// product names, lock timeouts, cancelled requests) are logged at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		logFn func(string, ...zap.Field)
		msg   string
	)
	log := WithTraceContext(ctx, l.logger)
	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	switch {
	case err != nil && expectedDBError(err):
		logFn, msg = log.Debug, "SQL rejected"
	case err != nil && l.level >= gormlogger.Error:
		logFn, msg = log.Error, "SQL failed"
	case slow && l.level >= gormlogger.Warn:
		logFn, msg = log.Warn, "SQL slow"
	case l.level >= gormlogger.Info:
		logFn, msg = log.Debug, "SQL"
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if slow {
		fields = append(fields, zap.Duration("slow_threshold", l.slowThreshold))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logFn(msg, fields...)
}

// expectedDBError reports errors that surface to callers as NOT_FOUND,
// ALREADY_EXISTS or CONCURRENCY_CONFLICT rather than as faults
func expectedDBError(err error) bool {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	msg := err.Error()
	// 55P03 is lock_not_available, raised when lock_timeout expires on FOR UPDATE
	return strings.Contains(msg, "55P03") || strings.Contains(msg, "lock timeout")
}

// MapGormLogLevel maps the application log level to a GORM log level.
// SQL statements are only traced at debug.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
