package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records template metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordExpansion records one expansion with its duration and error status.
	RecordExpansion(ctx context.Context, operator string, duration time.Duration, err error)

	// RecordExtraction records one extraction with its duration and error status.
	RecordExtraction(ctx context.Context, operator string, duration time.Duration, err error)

	// RecordMatcherCompile records compilation of a composite matcher.
	RecordMatcherCompile(ctx context.Context, operator string, maxLength int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	expansions        metric.Int64Counter
	expansionErrors   metric.Int64Counter
	expansionLatency  metric.Float64Histogram
	extractions       metric.Int64Counter
	extractionErrors  metric.Int64Counter
	extractionLatency metric.Float64Histogram
	matcherCompiles   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("uritemplate")

	expansions, err := meter.Int64Counter("uritemplate.expansions",
		metric.WithDescription("Number of expression expansions"),
	)
	if err != nil {
		return nil, err
	}

	expansionErrors, err := meter.Int64Counter("uritemplate.expansion.errors",
		metric.WithDescription("Number of failed expansions"),
	)
	if err != nil {
		return nil, err
	}

	expansionLatency, err := meter.Float64Histogram("uritemplate.expansion.latency_us",
		metric.WithDescription("Expansion latency in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return nil, err
	}

	extractions, err := meter.Int64Counter("uritemplate.extractions",
		metric.WithDescription("Number of variable extractions"),
	)
	if err != nil {
		return nil, err
	}

	extractionErrors, err := meter.Int64Counter("uritemplate.extraction.errors",
		metric.WithDescription("Number of failed extractions"),
	)
	if err != nil {
		return nil, err
	}

	extractionLatency, err := meter.Float64Histogram("uritemplate.extraction.latency_us",
		metric.WithDescription("Extraction latency in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return nil, err
	}

	matcherCompiles, err := meter.Int64Counter("uritemplate.matcher.compiles",
		metric.WithDescription("Number of composite matcher compilations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		expansions:        expansions,
		expansionErrors:   expansionErrors,
		expansionLatency:  expansionLatency,
		extractions:       extractions,
		extractionErrors:  extractionErrors,
		extractionLatency: extractionLatency,
		matcherCompiles:   matcherCompiles,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func micros(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e3
}

// RecordExpansion records an expansion.
func (m *otelMetrics) RecordExpansion(ctx context.Context, operator string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("operator", operator))
	m.expansions.Add(ctx, 1, attrs)
	m.expansionLatency.Record(ctx, micros(duration), attrs)
	if err != nil {
		m.expansionErrors.Add(ctx, 1, attrs)
	}
}

// RecordExtraction records an extraction.
func (m *otelMetrics) RecordExtraction(ctx context.Context, operator string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("operator", operator))
	m.extractions.Add(ctx, 1, attrs)
	m.extractionLatency.Record(ctx, micros(duration), attrs)
	if err != nil {
		m.extractionErrors.Add(ctx, 1, attrs)
	}
}

// RecordMatcherCompile records a matcher compilation.
func (m *otelMetrics) RecordMatcherCompile(ctx context.Context, operator string, maxLength int) {
	m.matcherCompiles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operator", operator),
		attribute.Int("max_length", maxLength),
	))
}
