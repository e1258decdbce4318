// Package tracer provides OpenTelemetry tracing for the HTTP query layer.
//
// NewClient builds an SDK tracer provider, optionally exporting spans over
// OTLP/HTTP, and registers it globally together with the W3C propagators.
// The httpquery middleware uses it to wrap parameter parsing in a
// "queryparser.Parse" span.
//
//	tr := tracer.NewClient(tracer.Config{ServiceName: "catalog-api"}, log)
//
//	ctx, span := tr.StartSpan(ctx, "load-products")
//	defer span.End()
//
//	tr.SetAttributes(span, map[string]interface{}{"filter_keys": 3})
//	if err != nil {
//	    tr.RecordErrorOnSpan(span, err)
//	}
//
// Configuration:
//
//	TRACER_SERVICE_NAME=catalog-api
//	APP_ENV=production
//	TRACER_ENABLE_EXPORT=true
//	TRACER_ENDPOINT=http://collector:4318/v1/traces
package tracer
