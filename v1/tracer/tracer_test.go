package tracer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorded() (*Tracer, *tracetest.SpanRecorder) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	return NewWithProvider(tp, nil), rec
}

func TestStartSpanAndAttributes(t *testing.T) {
	tr, rec := newRecorded()

	_, span := tr.StartSpan(context.Background(), "queryparser.Parse")
	tr.SetAttributes(span, map[string]interface{}{
		"filter_keys": 3,
		"param":       "sort",
		"valid":       true,
		"ratio":       0.5,
		"size":        int64(7),
		"keys":        []string{"a", "b"},
		"other":       struct{ A int }{1},
	})
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "queryparser.Parse", spans[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(3), attrs["filter_keys"].AsInt64())
	assert.Equal(t, "sort", attrs["param"].AsString())
	assert.True(t, attrs["valid"].AsBool())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.Equal(t, int64(7), attrs["size"].AsInt64())
	assert.Equal(t, []string{"a", "b"}, attrs["keys"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())
}

func TestSetAttributesEmpty(t *testing.T) {
	tr, rec := newRecorded()

	_, span := tr.StartSpan(context.Background(), "noop")
	tr.SetAttributes(span, nil)
	span.End()

	assert.Empty(t, rec.Ended()[0].Attributes())
}

func TestRecordErrorOnSpan(t *testing.T) {
	tr, rec := newRecorded()

	_, span := tr.StartSpan(context.Background(), "failing")
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	s := rec.Ended()[0]
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "boom", s.Status().Description)
	require.Len(t, s.Events(), 1)
	assert.Equal(t, "exception", s.Events()[0].Name)
}

func TestExtractHeaders(t *testing.T) {
	tr, _ := newRecorded()

	h := http.Header{}
	h.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	ctx := tr.ExtractHeaders(context.Background(), h)
	_, span := tr.StartSpan(ctx, "child")
	defer span.End()

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.SpanContext().TraceID().String())
}

func TestShutdownNil(t *testing.T) {
	var tr *Tracer
	assert.NoError(t, tr.Shutdown(context.Background()))
}
