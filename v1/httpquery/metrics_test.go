package httpquery

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/querystd/v1/metrics"
	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

type recordingMetrics struct {
	statuses  []string
	endpoints []string
}

func (m *recordingMetrics) IncrementRequests(status string) {
	m.statuses = append(m.statuses, status)
}

func (m *recordingMetrics) RecordRequestDuration(_ time.Time, endpoint string) {
	m.endpoints = append(m.endpoints, endpoint)
}

func TestInstrument_RecordsStatusAndRoute(t *testing.T) {
	rm := &recordingMetrics{}
	mux := http.NewServeMux()
	mux.Handle("GET /products/{id}", Instrument(rm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusInternalServerError)
	})))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/products/42", nil))

	assert.Equal(t, []string{"404"}, rm.statuses)
	assert.Equal(t, []string{"GET /products/{id}"}, rm.endpoints)
}

func TestInstrument_ImplicitOK(t *testing.T) {
	rm := &recordingMetrics{}
	h := Instrument(rm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, []string{"200"}, rm.statuses)
	assert.Equal(t, []string{"/health"}, rm.endpoints)
}

func TestFXModule_RecordsRequestMetrics(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})

	var mw HTTPMiddleware
	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() *queryparser.Parser {
			return queryparser.NewParser(queryparser.DefaultConfig(), nil)
		}),
		fx.Provide(func() metrics.MetricsCollector { return m }),
		fx.Populate(&mw),
	)
	app.RequireStart()
	defer app.RequireStop()

	serve(t, mw, "/products?status=active")
	serve(t, mw, "/products?status=archived")

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	var requests, durations uint64
	for _, f := range families {
		switch f.GetName() {
		case "requests_total":
			for _, metric := range f.GetMetric() {
				for _, l := range metric.GetLabel() {
					if l.GetName() == "status" && l.GetValue() == "204" {
						requests += uint64(metric.GetCounter().GetValue())
					}
				}
			}
		case "request_duration_seconds":
			for _, metric := range f.GetMetric() {
				durations += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(2), requests)
	assert.Equal(t, uint64(2), durations)
}
