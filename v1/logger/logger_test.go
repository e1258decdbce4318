package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T, tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core), tracing), logs
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestLoggerClient_Levels(t *testing.T) {
	log, logs := newObserved(t, false)

	log.Debug("debug", nil)
	log.Info("info", nil, map[string]interface{}{"k": "v"})
	log.Warn("warn", errors.New("degraded"), map[string]interface{}{"param": "sort"})
	log.Error("error", nil)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "v", entries[1].ContextMap()["k"])

	warn := entries[2].ContextMap()
	assert.Equal(t, "degraded", warn["error"])
	assert.Equal(t, "sort", warn["param"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLoggerClient_WithContextAddsTraceFields(t *testing.T) {
	log, logs := newObserved(t, true)

	log.InfoWithContext(spanContext(t), "parsed", nil, map[string]interface{}{"filter_keys": 3})

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.EqualValues(t, 3, fields["filter_keys"])
}

func TestLoggerClient_WithContextTracingDisabled(t *testing.T) {
	log, logs := newObserved(t, false)

	log.WarnWithContext(spanContext(t), "parsed", nil)

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
	assert.NotContains(t, fields, "span_id")
}

func TestLoggerClient_WithContextNoSpan(t *testing.T) {
	log, logs := newObserved(t, true)

	log.ErrorWithContext(context.Background(), "failed", errors.New("x"))
	log.DebugWithContext(context.Background(), "dbg", nil)

	for _, e := range logs.All() {
		assert.NotContains(t, e.ContextMap(), "trace_id")
	}
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelOf(Debug))
	assert.Equal(t, zapcore.InfoLevel, levelOf(Info))
	assert.Equal(t, zapcore.WarnLevel, levelOf(Warning))
	assert.Equal(t, zapcore.ErrorLevel, levelOf(Error))
	assert.Equal(t, zapcore.InfoLevel, levelOf("verbose"))
}

func TestNewLoggerClient(t *testing.T) {
	log := NewLoggerClient(Config{Level: Debug, ServiceName: "test"})
	require.NotNil(t, log)
	assert.True(t, log.Zap.Core().Enabled(zapcore.DebugLevel))
}
