package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns the otelgin middleware, which names spans after the
// matched route and propagates incoming trace context.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnricher tags the active span. It must run inside Tracing so the span
// exists when it starts.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
		}

		c.Next()

		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if code := c.GetString(ErrorCodeKey); code != "" {
			span.SetAttributes(attribute.String("error_code", code))
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
