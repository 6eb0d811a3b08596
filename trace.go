package testlog

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// traceEntry renders the OpenTelemetry span carried by ctx as a scope entry.
func traceEntry(ctx context.Context) (string, bool) {
	if ctx == nil {
		return emptyString, false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return emptyString, false
	}
	return ScopePairs{
		{Key: "trace_id", Value: sc.TraceID().String()},
		{Key: "span_id", Value: sc.SpanID().String()},
	}.join(), true
}
