package httpquery

import (
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/querystd/v1/metrics"
	"github.com/Aleph-Alpha/querystd/v1/queryparser"
	"github.com/Aleph-Alpha/querystd/v1/tracer"
)

// HTTPMiddleware is the middleware type provided by FXModule.
type HTTPMiddleware func(http.Handler) http.Handler

// FXModule provides the parsing middleware as HTTPMiddleware. When a
// metrics.MetricsCollector is available (metrics.FXModule), every request
// is also counted and timed.
//
// Usage:
//
//	app := fx.New(
//	    queryparser.FXModule,
//	    httpquery.FXModule,
//	    fx.Invoke(func(mw httpquery.HTTPMiddleware, mux *http.ServeMux) {
//	        mux.Handle("/products", mw(productsHandler))
//	    }),
//	)
var FXModule = fx.Module("httpquery",
	fx.Provide(
		NewMiddlewareWithDI,
	),
)

// MiddlewareParams groups the dependencies of the middleware.
type MiddlewareParams struct {
	fx.In

	Parser  *queryparser.Parser
	Tracer  *tracer.Tracer           `optional:"true"`
	Logger  Logger                   `optional:"true"`
	Metrics metrics.MetricsCollector `optional:"true"`
}

// NewMiddlewareWithDI builds the middleware from injected dependencies.
func NewMiddlewareWithDI(params MiddlewareParams) HTTPMiddleware {
	parse := Middleware(params.Parser, params.Tracer, params.Logger)
	if params.Metrics == nil {
		return parse
	}

	instrument := Instrument(params.Metrics)
	return func(next http.Handler) http.Handler {
		return instrument(parse(next))
	}
}
