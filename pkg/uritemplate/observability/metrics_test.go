package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a meter provider backed by a manual reader.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the counter value for the datapoint whose attribute key
// equals value, and whether such a datapoint exists.
func sumFor(t *testing.T, m *metricdata.Metrics, key, value string) (int64, bool) {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	for _, dp := range sum.DataPoints {
		for _, attr := range dp.Attributes.ToSlice() {
			if string(attr.Key) == key && attr.Value.Emit() == value {
				return dp.Value, true
			}
		}
	}
	return 0, false
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordExpansion(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records expansion count", func(t *testing.T) {
		m.RecordExpansion(ctx, "form_query", 50*time.Microsecond, nil)

		metric := findMetric(collectMetrics(t, reader), "uritemplate.expansions")
		require.NotNil(t, metric)

		n, found := sumFor(t, metric, "operator", "form_query")
		require.True(t, found, "Expected datapoint for operator=form_query")
		assert.GreaterOrEqual(t, n, int64(1))
	})

	t.Run("records latency", func(t *testing.T) {
		m.RecordExpansion(ctx, "path", 100*time.Microsecond, nil)

		metric := findMetric(collectMetrics(t, reader), "uritemplate.expansion.latency_us")
		require.NotNil(t, metric)

		hist, ok := metric.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")
		require.NotEmpty(t, hist.DataPoints)
	})

	t.Run("records errors when present", func(t *testing.T) {
		m.RecordExpansion(ctx, "label", time.Microsecond, errors.New("length limit"))

		metric := findMetric(collectMetrics(t, reader), "uritemplate.expansion.errors")
		require.NotNil(t, metric)

		n, found := sumFor(t, metric, "operator", "label")
		require.True(t, found)
		assert.Equal(t, int64(1), n)
	})

	t.Run("does not record error when nil", func(t *testing.T) {
		m.RecordExpansion(ctx, "fragment", time.Microsecond, nil)

		metric := findMetric(collectMetrics(t, reader), "uritemplate.expansion.errors")
		require.NotNil(t, metric)

		_, found := sumFor(t, metric, "operator", "fragment")
		assert.False(t, found)
	})
}

func TestRecordExtraction(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordExtraction(ctx, "basic", 10*time.Microsecond, nil)
	m.RecordExtraction(ctx, "basic", 10*time.Microsecond, errors.New("matcher defect"))

	rm := collectMetrics(t, reader)

	n, found := sumFor(t, findMetric(rm, "uritemplate.extractions"), "operator", "basic")
	require.True(t, found)
	assert.Equal(t, int64(2), n)

	n, found = sumFor(t, findMetric(rm, "uritemplate.extraction.errors"), "operator", "basic")
	require.True(t, found)
	assert.Equal(t, int64(1), n)

	require.NotNil(t, findMetric(rm, "uritemplate.extraction.latency_us"))
}

func TestRecordMatcherCompile(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordMatcherCompile(context.Background(), "path", 12)

	metric := findMetric(collectMetrics(t, reader), "uritemplate.matcher.compiles")
	require.NotNil(t, metric)

	n, found := sumFor(t, metric, "max_length", "12")
	require.True(t, found)
	assert.Equal(t, int64(1), n)
}
