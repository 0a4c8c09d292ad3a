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

// MetricsRecorder records calculation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCalculation records a finished calculation.
	// kind is empty on success and the error kind name otherwise.
	RecordCalculation(ctx context.Context, tokenCount int, duration time.Duration, kind string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	calculations metric.Int64Counter
	errors       metric.Int64Counter
	latency      metric.Float64Histogram
	tokens       metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(provider metric.MeterProvider) (*otelMetrics, error) {
	meter := provider.Meter("rpncalc")

	calculations, err := meter.Int64Counter("rpncalc.calculations",
		metric.WithDescription("Number of calculations"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("rpncalc.calculation.errors",
		metric.WithDescription("Number of failed calculations by error kind"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("rpncalc.calculation.latency_ms",
		metric.WithDescription("Calculation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	tokens, err := meter.Int64Histogram("rpncalc.calculation.tokens",
		metric.WithDescription("Number of input tokens per calculation"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		calculations: calculations,
		errors:       errs,
		latency:      latency,
		tokens:       tokens,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before the first call:
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

// NewProviderMetricsRecorder returns a MetricsRecorder with its own instruments
// created from provider instead of the global one.
func NewProviderMetricsRecorder(provider metric.MeterProvider) (MetricsRecorder, error) {
	return newOtelMetrics(provider)
}

// RecordCalculation records a calculation.
func (m *otelMetrics) RecordCalculation(ctx context.Context, tokenCount int, duration time.Duration, kind string) {
	success := kind == ""
	attrs := metric.WithAttributes(attribute.Bool("success", success))

	m.calculations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, Milliseconds(duration), attrs)
	m.tokens.Record(ctx, int64(tokenCount))

	if !success {
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}
