package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("uritemplate")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartExpandSpan starts a span for one expansion.
	StartExpandSpan(ctx context.Context, expression string) (context.Context, trace.Span)

	// StartExtractSpan starts a span for one extraction.
	StartExtractSpan(ctx context.Context, expression string, position int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartExpandSpan(ctx context.Context, expression string) (context.Context, trace.Span) {
	return StartExpandSpan(ctx, expression)
}

func (m *otelSpanManager) StartExtractSpan(ctx context.Context, expression string, position int) (context.Context, trace.Span) {
	return StartExtractSpan(ctx, expression, position)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartExpandSpan starts a span for one expansion using the global tracer.
func StartExpandSpan(ctx context.Context, expression string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "uritemplate.expand",
		trace.WithAttributes(
			attribute.String("template.expression", expression),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartExtractSpan starts a span for one extraction using the global tracer.
func StartExtractSpan(ctx context.Context, expression string, position int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "uritemplate.extract",
		trace.WithAttributes(
			attribute.String("template.expression", expression),
			attribute.Int("template.position", position),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
