package httpquery

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/querystd/v1/queryparser"
	"github.com/Aleph-Alpha/querystd/v1/tracer"
)

// SpanName is the name of the span wrapping parameter parsing.
const SpanName = "queryparser.Parse"

// Logger defines the logging methods the middleware needs.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

type contextKey struct{}

// Middleware parses the query of every request and stores the result in the
// request context, where handlers read it with FromContext. It never rejects
// a request: a query string that cannot be percent-decoded falls back to
// net/url parsing and degraded parameters only show up as diagnostics.
//
// tr and logger may be nil.
//
//	mux.Handle("/products", httpquery.Middleware(parser, tr, log)(productsHandler))
func Middleware(parser *queryparser.Parser, tr *tracer.Tracer, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if tr != nil && !trace.SpanContextFromContext(ctx).IsValid() {
				ctx = tr.ExtractHeaders(ctx, r.Header)
			}

			q := parseRequest(ctx, r, parser, tr, logger)
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKey{}, q)))
		})
	}
}

func parseRequest(ctx context.Context, r *http.Request, parser *queryparser.Parser, tr *tracer.Tracer, logger Logger) *queryparser.Query {
	var span trace.Span
	spanCtx := ctx
	if tr != nil {
		spanCtx, span = tr.StartSpan(ctx, SpanName)
		defer span.End()
	}

	params, err := ParseRawQuery(r.URL.RawQuery)
	if err != nil {
		if logger != nil {
			logger.WarnWithContext(spanCtx, "malformed query string, bracket syntax disabled", err, map[string]interface{}{
				"path": r.URL.Path,
			})
		}
		if span != nil {
			tr.RecordErrorOnSpan(span, err)
		}
		params = FromValues(r.URL.Query())
	}

	q := parser.Parse(params)

	if span != nil {
		tr.SetAttributes(span, map[string]interface{}{
			"query.filter_keys": len(q.Filter()),
			"query.diagnostics": len(q.Diagnostics()),
		})
	}
	if logger != nil && len(q.Diagnostics()) > 0 {
		logger.DebugWithContext(spanCtx, "request query degraded", nil, map[string]interface{}{
			"path":        r.URL.Path,
			"diagnostics": len(q.Diagnostics()),
		})
	}
	return q
}

// FromContext returns the query stored by Middleware.
func FromContext(ctx context.Context) (*queryparser.Query, bool) {
	q, ok := ctx.Value(contextKey{}).(*queryparser.Query)
	return q, ok && q != nil
}
