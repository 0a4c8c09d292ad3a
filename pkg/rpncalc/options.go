package rpncalc

import (
	"log/slog"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/config"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/format"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/journal"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/observability"
)

// calcConfig holds the settings a Calculator is built from.
type calcConfig struct {
	precision       int
	strictOperators bool
	collapseErrors  bool

	logger         *slog.Logger
	metricsEnabled bool
	tracingEnabled bool
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager

	journal journal.Store
}

// defaultCalcConfig returns the default calculator configuration.
func defaultCalcConfig() calcConfig {
	return calcConfig{
		precision: format.DefaultPlaces,
	}
}

// Option configures a Calculator.
type Option func(*calcConfig)

// WithPrecision sets the number of fractional digits kept in results.
// Default: 5
//
// Values outside 0..15 are ignored.
func WithPrecision(places int) Option {
	return func(c *calcConfig) {
		if places >= 0 && places <= format.MaxPlaces {
			c.precision = places
		}
	}
}

// WithStrictOperators makes unknown operator symbols fail the calculation.
// By default they consume their operands and produce nothing.
func WithStrictOperators(enabled bool) Option {
	return func(c *calcConfig) {
		c.strictOperators = enabled
	}
}

// WithCollapsedErrors reports every failure as KindUnknown.
// The underlying cause stays wrapped, so errors.Is still works.
func WithCollapsedErrors(enabled bool) Option {
	return func(c *calcConfig) {
		c.collapseErrors = enabled
	}
}

// WithLogger sets the logger for calculation events.
// Default: nil (no logging)
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	calc := rpncalc.New(rpncalc.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *calcConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics from the global meter provider.
// Default: false
//
// Metrics recorded:
//   - rpncalc.calculations: counter, attribute success
//   - rpncalc.calculation.errors: counter, attribute kind
//   - rpncalc.calculation.latency_ms: histogram
//   - rpncalc.calculation.tokens: histogram
func WithMetrics(enabled bool) Option {
	return func(c *calcConfig) {
		c.metricsEnabled = enabled
	}
}

// WithMetricsRecorder enables metrics using the given recorder.
func WithMetricsRecorder(recorder observability.MetricsRecorder) Option {
	return func(c *calcConfig) {
		c.metrics = recorder
		c.metricsEnabled = recorder != nil
	}
}

// WithTracing enables OpenTelemetry tracing from the global tracer provider.
// Default: false
//
// Spans created:
//   - rpncalc.calculate: parent span with calc.id and calc.tokens
//   - rpncalc.stage.convert, rpncalc.stage.evaluate, rpncalc.stage.format
func WithTracing(enabled bool) Option {
	return func(c *calcConfig) {
		c.tracingEnabled = enabled
	}
}

// WithSpanManager enables tracing using the given span manager.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(c *calcConfig) {
		c.spans = spans
		c.tracingEnabled = spans != nil
	}
}

// WithJournal records every calculation in store.
// Journal failures are logged and never fail a calculation.
func WithJournal(store journal.Store) Option {
	return func(c *calcConfig) {
		c.journal = store
	}
}

// WithSettings applies the calculator fields of s. Metrics and tracing are
// only ever switched on by it. Logging and the journal path are left to the
// caller, which owns those resources.
func WithSettings(s config.Settings) Option {
	return func(c *calcConfig) {
		WithPrecision(s.Precision)(c)
		c.strictOperators = s.StrictOperators
		c.collapseErrors = s.CollapseErrors
		if s.Metrics {
			c.metricsEnabled = true
		}
		if s.Tracing {
			c.tracingEnabled = true
		}
	}
}
