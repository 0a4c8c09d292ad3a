package rpncalc

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/format"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/journal"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/observability"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/postfix"
	"go.opentelemetry.io/otel/trace"
)

// Stage names used for spans and log records.
const (
	StageConvert  = "convert"
	StageEvaluate = "evaluate"
	StageFormat   = "format"
)

// Result is the outcome of a successful calculation.
type Result struct {
	// ID identifies the calculation in logs, spans and the journal.
	ID string
	// Tokens is a copy of the infix input.
	Tokens []string
	// Postfix is the converted token sequence.
	Postfix []string
	// Raw is the evaluated value before rounding.
	Raw float64
	// Value is Raw rounded to the configured precision.
	Value float64
}

// Calculator converts, evaluates and formats infix token sequences.
// A Calculator holds no per-calculation state and is safe for concurrent use.
type Calculator struct {
	precision      int
	evalOpts       []postfix.EvalOption
	collapseErrors bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	journal journal.Store
}

// New creates a Calculator.
//
// Example:
//
//	calc := rpncalc.New(
//	    rpncalc.WithPrecision(3),
//	    rpncalc.WithLogger(logger),
//	)
//	v, err := calc.Calculate(ctx, []string{"1", "/", "3"}) // 0.333
func New(opts ...Option) *Calculator {
	cfg := defaultCalcConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Calculator{
		precision:      cfg.precision,
		collapseErrors: cfg.collapseErrors,
		logger:         cfg.logger,
		metrics:        observability.NoopMetrics{},
		spans:          observability.NoopSpanManager{},
		journal:        cfg.journal,
	}
	if cfg.strictOperators {
		c.evalOpts = append(c.evalOpts, postfix.WithStrictOperators())
	}

	if cfg.metricsEnabled {
		c.metrics = cfg.metrics
		if c.metrics == nil {
			c.metrics = observability.NewMetricsRecorder()
		}
	}
	if cfg.tracingEnabled {
		c.spans = cfg.spans
		if c.spans == nil {
			c.spans = observability.NewSpanManager()
		}
	}

	return c
}

// Precision returns the number of fractional digits kept in results.
func (c *Calculator) Precision() int {
	return c.precision
}

// Calculate evaluates an infix token sequence and returns the rounded value.
func (c *Calculator) Calculate(ctx context.Context, tokens []string) (float64, error) {
	res, err := c.Evaluate(ctx, tokens)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// Evaluate evaluates an infix token sequence and returns every intermediate form.
//
// Errors are always *Error. The context carries trace spans only: a
// calculation is linear in the number of tokens and is not cancellable.
// A panic raised here or in an injected collaborator is returned as a
// KindUnknown error wrapping ErrInternal. A panicking journal is logged
// like any other journal failure.
func (c *Calculator) Evaluate(ctx context.Context, tokens []string) (result *Result, calcErr error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			calcErr = panicked(r)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	res := &Result{
		ID:     uuid.NewString(),
		Tokens: slices.Clone(tokens),
	}
	logger := observability.EnrichLogger(c.logger, res.ID)
	elapsed := observability.TimedOperation()

	observability.LogCalculationStart(logger, len(tokens))

	spanCtx, span := c.spans.StartCalculationSpan(ctx, res.ID, len(tokens))
	calcErr = c.run(spanCtx, logger, res)
	c.spans.EndSpanWithError(span, calcErr)

	duration := elapsed()
	kind := ""
	if calcErr != nil {
		kind = KindOf(calcErr).String()
	}
	c.metrics.RecordCalculation(ctx, len(tokens), duration, kind)

	if calcErr != nil {
		observability.LogCalculationError(logger, kind, calcErr, observability.Milliseconds(duration))
	} else {
		observability.LogCalculationComplete(logger, res.Value, observability.Milliseconds(duration))
	}

	c.record(logger, res, calcErr)

	if calcErr != nil {
		return nil, calcErr
	}
	return res, nil
}

// run executes the three stages, each inside its own span.
// A panic ends the open stage span with the recovered error.
func (c *Calculator) run(ctx context.Context, logger *slog.Logger, res *Result) (err error) {
	var active trace.Span
	defer func() {
		if r := recover(); r != nil {
			err = panicked(r)
			if active != nil {
				c.spans.EndSpanWithError(active, err)
			}
		}
	}()

	_, active = c.spans.StartStageSpan(ctx, StageConvert)
	res.Postfix = postfix.Convert(res.Tokens)
	observability.LogStage(logger, StageConvert, slog.Any("postfix", res.Postfix))
	c.spans.EndSpanWithError(active, nil)
	active = nil

	_, active = c.spans.StartStageSpan(ctx, StageEvaluate)
	res.Raw, err = postfix.Evaluate(res.Postfix, c.evalOpts...)
	c.spans.EndSpanWithError(active, err)
	active = nil
	if err != nil {
		return c.wrap(OpEvaluate, err)
	}
	observability.LogStage(logger, StageEvaluate, slog.Float64("raw", res.Raw))

	_, active = c.spans.StartStageSpan(ctx, StageFormat)
	res.Value, err = format.Round(res.Raw, c.precision)
	c.spans.EndSpanWithError(active, err)
	active = nil
	if err != nil {
		return c.wrap(OpFormat, err)
	}
	observability.LogStage(logger, StageFormat, slog.Float64("value", res.Value))

	return nil
}

// panicked converts a recovered value into a KindUnknown *Error.
func panicked(r any) *Error {
	return &Error{
		Kind: KindUnknown,
		Op:   OpCalculate,
		Err: &PanicError{
			Value: r,
			Stack: string(debug.Stack()),
		},
	}
}

// wrap builds the *Error for a failed stage.
func (c *Calculator) wrap(op string, err error) *Error {
	kind := classify(err)
	if c.collapseErrors {
		kind = KindUnknown
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// record saves the calculation to the journal, if one is configured.
func (c *Calculator) record(logger *slog.Logger, res *Result, calcErr error) {
	if c.journal == nil {
		return
	}

	entry := journal.Entry{
		ID:        res.ID,
		Tokens:    res.Tokens,
		Postfix:   res.Postfix,
		Value:     res.Value,
		CreatedAt: time.Now().UTC(),
	}
	if calcErr != nil {
		entry.Value = 0
		entry.ErrorKind = KindOf(calcErr).String()
		entry.Error = calcErr.Error()
	}

	defer func() {
		if r := recover(); r != nil {
			observability.LogJournalError(logger, "save", fmt.Errorf("entry %s: %w", res.ID, panicked(r)))
		}
	}()
	if err := c.journal.Save(entry); err != nil {
		observability.LogJournalError(logger, "save", fmt.Errorf("entry %s: %w", res.ID, err))
	}
}

var defaultCalculator = New()

// Calculate evaluates tokens with a default Calculator: five fractional
// digits, permissive operators and no logging, metrics, tracing or journal.
//
//	v, err := rpncalc.Calculate([]string{"2", "+", "3", "*", "4"}) // 14
func Calculate(tokens []string) (float64, error) {
	return defaultCalculator.Calculate(context.Background(), tokens)
}
