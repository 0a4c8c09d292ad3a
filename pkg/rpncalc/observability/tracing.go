package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCalculationSpan starts the parent span of a calculation.
	StartCalculationSpan(ctx context.Context, calcID string, tokenCount int) (context.Context, trace.Span)

	// StartStageSpan starts a child span for convert, evaluate or format.
	StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider at the time of the
// call, so configure it first:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return NewProviderSpanManager(otel.GetTracerProvider())
}

// NewProviderSpanManager returns a SpanManager whose spans come from provider.
func NewProviderSpanManager(provider trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: provider.Tracer("rpncalc")}
}

// StartCalculationSpan starts the parent span of a calculation.
func (m *otelSpanManager) StartCalculationSpan(ctx context.Context, calcID string, tokenCount int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "rpncalc.calculate",
		trace.WithAttributes(
			attribute.String("calc.id", calcID),
			attribute.Int("calc.tokens", tokenCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStageSpan starts a child span for a pipeline stage.
func (m *otelSpanManager) StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "rpncalc.stage."+stage,
		trace.WithAttributes(
			attribute.String("stage", stage),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
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
