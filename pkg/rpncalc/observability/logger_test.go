package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJSONLogger returns a debug-level JSON logger writing to buf.
func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// records decodes one JSON object per line.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "info", "json")
		require.NoError(t, err)

		logger.Info("hello", slog.Int("n", 1))
		logger.Debug("hidden")

		recs := records(t, &buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "hello", recs[0]["msg"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "debug", "text")
		require.NoError(t, err)

		logger.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := EnrichLogger(newJSONLogger(&buf), "calc-1")
	logger.Info("test")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "calc-1", recs[0]["calc_id"])

	assert.Nil(t, EnrichLogger(nil, "calc-1"))
}

func TestLogHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf)

	LogCalculationStart(logger, 5)
	LogStage(logger, "convert", slog.String("postfix", "2 3 +"))
	LogCalculationComplete(logger, 5, 0.25)
	LogCalculationError(logger, "divided_by_zero", errors.New("division by zero"), 0.1)
	LogJournalError(logger, "save", errors.New("disk full"))

	recs := records(t, &buf)
	require.Len(t, recs, 5)

	assert.Equal(t, "calculation starting", recs[0]["msg"])
	assert.EqualValues(t, 5, recs[0]["tokens"])

	assert.Equal(t, "stage completed", recs[1]["msg"])
	assert.Equal(t, "convert", recs[1]["stage"])
	assert.Equal(t, "2 3 +", recs[1]["postfix"])

	assert.Equal(t, "calculation completed", recs[2]["msg"])
	assert.EqualValues(t, 5, recs[2]["value"])
	assert.Equal(t, "INFO", recs[2]["level"])

	assert.Equal(t, "calculation failed", recs[3]["msg"])
	assert.Equal(t, "divided_by_zero", recs[3]["kind"])
	assert.Equal(t, "WARN", recs[3]["level"])

	assert.Equal(t, "journal failed", recs[4]["msg"])
	assert.Equal(t, "save", recs[4]["operation"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCalculationStart(nil, 1)
		LogStage(nil, "convert", slog.Int("n", 1))
		LogCalculationComplete(nil, 1, 1)
		LogCalculationError(nil, "unknown", errors.New("x"), 1)
		LogJournalError(nil, "save", errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 5*time.Millisecond)
}

func TestMilliseconds(t *testing.T) {
	assert.Equal(t, 1.5, Milliseconds(1500*time.Microsecond))
	assert.Equal(t, 1000.0, Milliseconds(time.Second))
}
