package uritemplate

import (
	"log/slog"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate/observability"
)

// options holds the collaborators of an Expression.
type options struct {
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	matchers *MatcherCache
}

func defaultOptions() options {
	return options{
		logger:   slog.Default(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
		matchers: defaultMatchers,
	}
}

// Option configures an Expression.
type Option func(*options)

// WithLogger sets the logger used for matcher defects and debug output.
//
// Default: slog.Default()
//
// Example:
//
//	expr, err := uritemplate.ParseExpression("{?q}", uritemplate.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
//
// Default: observability.NoopMetrics{}
//
// Example:
//
//	expr, err := uritemplate.ParseExpression("{?q}",
//	    uritemplate.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSpanManager sets the tracing span manager used by ExpandContext and
// ExtractContext.
//
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(o *options) {
		if s != nil {
			o.spans = s
		}
	}
}

// WithMatcherCache sets the cache of compiled composite matchers.
//
// Default: a process-wide cache shared by all expressions.
func WithMatcherCache(c *MatcherCache) Option {
	return func(o *options) {
		if c != nil {
			o.matchers = c
		}
	}
}
