// Package observability provides structured logging, metrics, and tracing
// for URI template expansion and extraction.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All helpers accept a nil logger, and every recorder has a no-op variant.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds expression context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "{?q,lang}", "form_query")
//	enriched.Debug("expanding") // includes expression and operator
func EnrichLogger(logger *slog.Logger, expression, operator string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("expression", expression),
		slog.String("operator", operator),
	)
}

// LogExpansionError logs a failed expansion. The error is also returned to
// the caller, so this logs at DEBUG.
func LogExpansionError(logger *slog.Logger, expression string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("expansion failed",
		slog.String("expression", expression),
		slog.String("error", err.Error()),
	)
}

// LogMatchFailure logs a composite matcher that could not consume its input.
// This is always a defect, so it logs at ERROR.
func LogMatchFailure(logger *slog.Logger, expression, variable, remainder string) {
	if logger == nil {
		return
	}
	logger.Error("composite matcher defect",
		slog.String("expression", expression),
		slog.String("variable", variable),
		slog.String("remainder", remainder),
	)
}

// LogMatcherCompiled logs compilation of a composite matcher.
func LogMatcherCompiled(logger *slog.Logger, operator string, maxLength int, pattern string) {
	if logger == nil {
		return
	}
	logger.Debug("matcher compiled",
		slog.String("operator", operator),
		slog.Int("max_length", maxLength),
		slog.String("pattern", pattern),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
