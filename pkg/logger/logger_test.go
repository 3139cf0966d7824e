package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := globalLogger
	Set(zap.New(core))
	t.Cleanup(func() { globalLogger = prev })
	return logs
}

func TestInit(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		require.NoError(t, Init(level, "production"))
		require.NoError(t, Init(level, "development"))
	}
	assert.NotNil(t, Get())
}

func TestGet_BeforeInit(t *testing.T) {
	prev := globalLogger
	globalLogger = nil
	t.Cleanup(func() { globalLogger = prev })

	assert.NotPanics(t, func() { Info("nothing to see") })
}

func TestWithContext(t *testing.T) {
	logs := observe(t)

	ctx := WithRunID(WithRequestID(context.Background(), "req-1"), "run-9")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "run-9", RunID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	WithContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "run-9", fields["run_id"])
}

func TestFieldHelpers(t *testing.T) {
	logs := observe(t)

	Warn("fields",
		String("s", "x"),
		Int("i", 3),
		Float64("f", 1.5),
		Bool("b", true),
		JSON("j", map[string]int{"a": 1}),
		Time("t", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		ErrorField(errors.New("boom")),
	)
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "x", fields["s"])
	assert.Equal(t, int64(3), fields["i"])
	assert.Equal(t, 1.5, fields["f"])
	assert.Equal(t, true, fields["b"])
	assert.Equal(t, `{"a":1}`, fields["j"])
	ts, ok := fields["t"].(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "boom", fields["error"])
}

func TestCountError(t *testing.T) {
	logs := observe(t)

	before := testutil.ToFloat64(ErrorsTotal.WithLabelValues("test", "io"))
	CountError("test", "io", errors.New("disk full"))
	assert.Equal(t, before+1, testutil.ToFloat64(ErrorsTotal.WithLabelValues("test", "io")))
	assert.Equal(t, 1, logs.FilterMessage("Operation failed").Len())
}
