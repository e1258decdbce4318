// Package metrics provides Prometheus metrics for services built on this
// module, including an observability.Observer for the query parser.
//
// # Architecture
//
//   - MetricsCollector interface: request metrics, metric factories and Observer
//   - Metrics struct: the implementation, with an isolated registry
//   - NewMetrics constructor: returns *Metrics
//   - FXModule: provides *Metrics, MetricsCollector and observability.Observer
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/querystd/v1/metrics"
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		Namespace:   "catalog",
//		ServiceName: "catalog-api",
//	})
//	go m.Server.ListenAndServe()
//
//	parser := queryparser.NewParser(queryparser.DefaultConfig(), log).WithObserver(m)
//
// # Query Parser Metrics
//
// When attached as an observer the parser feeds:
//
//	<ns>_operations_total{component="queryparser",operation="parse",status}
//	<ns>_operation_duration_seconds{component="queryparser",operation="parse"}
//	<ns>_query_filter_keys{component="queryparser"}
//	<ns>_query_diagnostics_total{component="queryparser",param,reason}
//
// A rising query_diagnostics_total for one param usually means a client
// sends a malformed encoding for it.
//
// # Custom Metrics
//
//	hits := m.CreateCounter("cache_hits_total", "Cache hits", []string{"cache"})
//	hits.WithLabelValues("products").Inc()
//
// # Configuration
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE=catalog
//	METRICS_SERVICE_NAME=catalog-api
package metrics
