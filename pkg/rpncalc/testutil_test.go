package rpncalc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/journal"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/observability"
	"go.opentelemetry.io/otel/trace"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	mu    *sync.Mutex
	buf   *bytes.Buffer
	attrs []slog.Attr
	level slog.Level
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{
		mu:    &sync.Mutex{},
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *testLogHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testLogHandler) getRecords() []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()

	var records []map[string]any
	for _, line := range bytes.Split(h.buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(line, &m); err == nil {
			records = append(records, m)
		}
	}
	return records
}

// findRecord returns the first record with the given message.
func findRecord(records []map[string]any, msg string) map[string]any {
	for _, r := range records {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

var errDiskFull = errors.New("disk full")

// failingStore is a journal whose writes always fail.
type failingStore struct {
	journal.MemoryStore
}

func (*failingStore) Save(journal.Entry) error {
	return errDiskFull
}

// panickySpans panics when a stage span starts.
type panickySpans struct {
	observability.NoopSpanManager
}

func (panickySpans) StartStageSpan(context.Context, string) (context.Context, trace.Span) {
	panic("span exporter exploded")
}

// panickyStore is a journal whose writes panic.
type panickyStore struct {
	journal.MemoryStore
}

func (*panickyStore) Save(journal.Entry) error {
	panic("disk on fire")
}

// panickyMetrics panics on every recording.
type panickyMetrics struct{}

func (panickyMetrics) RecordCalculation(context.Context, int, time.Duration, string) {
	panic("exporter exploded")
}

// panickyCalculationSpans panics when the calculation span starts.
type panickyCalculationSpans struct {
	observability.NoopSpanManager
}

func (panickyCalculationSpans) StartCalculationSpan(context.Context, string, int) (context.Context, trace.Span) {
	panic("tracer unavailable")
}

// stagePanicHandler panics when a stage result is logged.
type stagePanicHandler struct{}

func (stagePanicHandler) Enabled(context.Context, slog.Level) bool { return true }

func (stagePanicHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Message == "stage completed" {
		panic("log sink closed")
	}
	return nil
}

func (h stagePanicHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h stagePanicHandler) WithGroup(string) slog.Handler { return h }
