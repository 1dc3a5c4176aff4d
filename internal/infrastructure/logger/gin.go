package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in and out of the server
const RequestIDHeader = "X-Request-ID"

// GinMiddleware logs every request and stores a request-scoped logger on
// both the gin context and the request context
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetString("request_id")
		if requestID == "" {
			requestID = c.GetHeader(RequestIDHeader)
		}

		ctx, reqLogger := WithRequestID(c.Request.Context(), logger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", reqLogger)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		msg := "HTTP Request"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}

// Recovery recovers from panics, logs them and answers 500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the request logger from gin context
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return zap.NewNop()
}
