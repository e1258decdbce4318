package httpquery

import (
	"net/http"
	"strconv"
	"time"
)

// RequestMetrics is the part of metrics.MetricsCollector the middleware
// records into.
type RequestMetrics interface {
	IncrementRequests(status string)
	RecordRequestDuration(start time.Time, endpoint string)
}

// Instrument counts every request by response status and records its
// duration per route. The route is the ServeMux pattern when there is one,
// the request path otherwise.
//
//	mux.Handle("GET /products", httpquery.Instrument(m)(productsHandler))
func Instrument(m RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			m.IncrementRequests(strconv.Itoa(sw.status))
			m.RecordRequestDuration(start, endpointOf(r))
		})
	}
}

func endpointOf(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return r.URL.Path
}

// statusWriter remembers the first status code written.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
