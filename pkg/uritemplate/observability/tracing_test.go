package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider that records into memory.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("uritemplate")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func spanAttr(s tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, attr := range s.Attributes {
		if string(attr.Key) == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartExpandSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx := context.Background()
	newCtx, span := StartExpandSpan(ctx, "{?x,y}")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "uritemplate.expand", spans[0].Name)

	v, ok := spanAttr(spans[0], "template.expression")
	require.True(t, ok)
	assert.Equal(t, "{?x,y}", v.AsString())
}

func TestStartExtractSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("records position", func(t *testing.T) {
		_, span := StartExtractSpan(context.Background(), "{/list*}", 0)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "uritemplate.extract", spans[0].Name)

		v, ok := spanAttr(spans[0], "template.position")
		require.True(t, ok)
		assert.Equal(t, int64(0), v.AsInt64())
	})

	t.Run("nested under expand span", func(t *testing.T) {
		exporter.Reset()

		ctx, parent := StartExpandSpan(context.Background(), "{x}")
		_, child := StartExtractSpan(ctx, "{x}", 0)
		child.End()
		parent.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		var extract *tracetest.SpanStub
		for i := range spans {
			if spans[i].Name == "uritemplate.extract" {
				extract = &spans[i]
			}
		}
		require.NotNil(t, extract)
		assert.True(t, extract.Parent.IsValid())
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("sets OK status for nil error", func(t *testing.T) {
		_, span := StartExpandSpan(context.Background(), "{x}")
		EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("sets Error status and records error", func(t *testing.T) {
		exporter.Reset()

		_, span := StartExpandSpan(context.Background(), "{x:3}")
		EndSpanWithError(span, errors.New("length limit"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "length limit", spans[0].Status.Description)

		found := false
		for _, event := range spans[0].Events {
			if event.Name == "exception" {
				found = true
			}
		}
		assert.True(t, found, "Expected exception event")
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			EndSpanWithError(nil, errors.New("test"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, span := StartExtractSpan(context.Background(), "{?keys*}", 0)
	AddSpanEvent(ctx, "matcher.compiled", attribute.Int("max_length", 0))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "matcher.compiled", spans[0].Events[0].Name)

	assert.NotPanics(t, func() {
		AddSpanEvent(context.Background(), "no span")
	})
}

func TestOtelSpanManager(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	ctx, span := sm.StartExpandSpan(context.Background(), "{x}")
	sm.AddSpanEvent(ctx, "rendered")
	sm.EndSpanWithError(span, nil)

	_, span = sm.StartExtractSpan(context.Background(), "{x}", 0)
	sm.EndSpanWithError(span, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}
