package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelOperation    = "operation"
	ProfilingLabelMovementKind = "movement_kind"
)

// MaxLabelValueLength caps label values to keep profile series small
const MaxLabelValueLength = 128

// highCardinalityLabels are dropped from profiling labels. Document and
// product IDs belong on spans, not on profiles.
var highCardinalityLabels = map[string]bool{
	"product_id":  true,
	"purchase_id": true,
	"sale_id":     true,
	"item_id":     true,
	"request_id":  true,
	"trace_id":    true,
	"span_id":     true,
}

// WithProfilingLabels runs fn with pprof labels attached, so Pyroscope can
// slice CPU and allocation samples by operation. The labels map is not
// retained.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// MovementLabels labels a stock movement operation such as "purchase.receive"
func MovementLabels(operation string, kind MovementKind) map[string]string {
	return map[string]string{
		ProfilingLabelOperation:    operation,
		ProfilingLabelMovementKind: string(kind),
	}
}

// ProfileMovement runs fn under MovementLabels and returns its error
func ProfileMovement(ctx context.Context, operation string, kind MovementKind, fn func(context.Context) error) error {
	var err error
	WithProfilingLabels(ctx, MovementLabels(operation, kind), func(ctx context.Context) {
		err = fn(ctx)
	})
	return err
}

// sanitizeLabels returns sorted key/value pairs with empty entries and
// high-cardinality keys removed and long values truncated.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if value == "" {
			continue
		}
		key = sanitizeLabelKey(key)
		if key == "" || highCardinalityLabels[key] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		pairs = append(pairs, key, value)
	}
	return pairs
}

// sanitizeLabelKey lowercases key and keeps only [a-z0-9_]
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			out = append(out, c)
		}
	}
	return string(out)
}
