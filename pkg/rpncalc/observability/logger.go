// Package observability provides structured logging, metrics, and tracing
// for rpncalc calculations.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// NewLogger builds a slog.Logger writing to w.
// level is one of debug, info, warn, error; format is text or json.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// EnrichLogger adds the calculation ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "3f6c...")
//	enriched.Info("converting") // includes calc_id
func EnrichLogger(logger *slog.Logger, calcID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("calc_id", calcID))
}

// LogCalculationStart logs the start of a calculation.
func LogCalculationStart(logger *slog.Logger, tokenCount int) {
	if logger == nil {
		return
	}
	logger.Debug("calculation starting",
		slog.Int("tokens", tokenCount),
	)
}

// LogStage logs the output of one pipeline stage.
func LogStage(logger *slog.Logger, stage string, detail slog.Attr) {
	if logger == nil {
		return
	}
	logger.Debug("stage completed",
		slog.String("stage", stage),
		detail,
	)
}

// LogCalculationComplete logs a successful calculation.
func LogCalculationComplete(logger *slog.Logger, value float64, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("calculation completed",
		slog.Float64("value", value),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCalculationError logs a failed calculation.
func LogCalculationError(logger *slog.Logger, kind string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("calculation failed",
		slog.String("kind", kind),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogJournalError logs a journal failure (non-fatal).
func LogJournalError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
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

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
