package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of business spans
const TracerName = "supplements-backend"

// Span attribute keys used by the costing services
const (
	SpanAttrProductID  = "product_id"
	SpanAttrPurchaseID = "purchase_id"
	SpanAttrSaleID     = "sale_id"
	SpanAttrQuantity   = "quantity"
	SpanAttrItemCount  = "item_count"
	SpanAttrErrorCode  = "error_code"
)

// SpanOption configures a span started by StartSpan
type SpanOption func(*spanOptions)

type spanOptions struct {
	attributes []attribute.KeyValue
	kind       trace.SpanKind
}

// WithAttribute adds an attribute to the span
func WithAttribute(key string, value any) SpanOption {
	return func(opts *spanOptions) {
		opts.attributes = append(opts.attributes, toAttribute(key, value))
	}
}

// WithSpanKind sets the span kind
func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(opts *spanOptions) {
		opts.kind = kind
	}
}

// StartSpan starts a span on the global tracer. The caller ends it.
//
//	ctx, span := telemetry.StartSpan(ctx, "purchase.receive")
//	defer span.End()
func StartSpan(ctx context.Context, spanName string, opts ...SpanOption) (context.Context, trace.Span) {
	options := &spanOptions{kind: trace.SpanKindInternal}
	for _, opt := range opts {
		opt(options)
	}

	startOpts := []trace.SpanStartOption{trace.WithSpanKind(options.kind)}
	if len(options.attributes) > 0 {
		startOpts = append(startOpts, trace.WithAttributes(options.attributes...))
	}
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, spanName, startOpts...)
}

// StartServiceSpan starts a span named {service}.{method}
func StartServiceSpan(ctx context.Context, service, method string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("%s.%s", service, method), opts...)
}

// EndSpan records err, if any, and ends the span. Errors exposing ErrorCode()
// are tagged with the code.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create")
//	defer func() { telemetry.EndSpan(span, err) }()
func EndSpan(span trace.Span, err error) {
	if err != nil {
		var coded interface{ ErrorCode() string }
		if errors.As(err, &coded) {
			span.SetAttributes(attribute.String(SpanAttrErrorCode, coded.ErrorCode()))
		}
		RecordError(span, err)
	}
	span.End()
}

// SetAttributes adds key/value pairs to span. Non-string keys are skipped.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}
	span.SetAttributes(attrs...)
}

// RecordError records err on the span and marks it failed
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

// GetTraceID returns the trace ID of the active span, or ""
func GetTraceID(ctx context.Context) string {
	traceID := trace.SpanContextFromContext(ctx).TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
