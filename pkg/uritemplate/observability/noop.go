package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

// RecordExpansion does nothing.
func (NoopMetrics) RecordExpansion(_ context.Context, _ string, _ time.Duration, _ error) {}

// RecordExtraction does nothing.
func (NoopMetrics) RecordExtraction(_ context.Context, _ string, _ time.Duration, _ error) {}

// RecordMatcherCompile does nothing.
func (NoopMetrics) RecordMatcherCompile(_ context.Context, _ string, _ int) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartExpandSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartExpandSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartExtractSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartExtractSpan(ctx context.Context, _ string, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
