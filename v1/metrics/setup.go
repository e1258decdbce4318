package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// filterKeyBuckets covers filters from a bare soft delete predicate up to
// heavily filtered list requests.
var filterKeyBuckets = []float64{1, 2, 3, 5, 8, 13, 21}

// Metrics holds the Prometheus registry, the /metrics server and the
// built-in collectors for query parsing and request handling.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	diagnosticsTotal  *prometheus.CounterVec
	filterKeys        *prometheus.HistogramVec
}

// NewMetrics creates the registry, registers the built-in metrics and
// prepares (but does not start) the /metrics server.
//
// Built-in metrics:
//   - requests_total{status}
//   - request_duration_seconds{endpoint}
//   - operations_total{component,operation,status}
//   - operation_duration_seconds{component,operation}
//   - query_diagnostics_total{component,param,reason}
//   - query_filter_keys{component}
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
		namespace:  cfg.Namespace,
	}

	m.requestsTotal = createCounterVec(cfg.Namespace, "requests_total", "Total number of processed requests", []string{"status"})
	m.requestDuration = createHistogramVec(cfg.Namespace, "request_duration_seconds", "Duration of HTTP requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)
	m.operationsTotal = createCounterVec(cfg.Namespace, "operations_total", "Total number of observed operations", []string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "operation_duration_seconds", "Duration of observed operations in seconds", []string{"component", "operation"}, prometheus.ExponentialBuckets(0.00001, 4, 10))
	m.diagnosticsTotal = createCounterVec(cfg.Namespace, "query_diagnostics_total", "Query parameters degraded while parsing", []string{"component", "param", "reason"})
	m.filterKeys = createHistogramVec(cfg.Namespace, "query_filter_keys", "Number of keys in parsed filters", []string{"component"}, filterKeyBuckets)

	wrappedRegistry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.operationsTotal,
		m.operationDuration,
		m.diagnosticsTotal,
		m.filterKeys,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	m.Server = &http.Server{
		Addr:    address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
