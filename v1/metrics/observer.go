package metrics

import (
	"github.com/Aleph-Alpha/querystd/v1/observability"
)

// Operations with dedicated handling.
const (
	operationParse      = "parse"
	operationDiagnostic = "diagnostic"
)

// ObserveOperation records an operation reported by an observed package.
//
// Diagnostics only increment query_diagnostics_total, labelled with the
// parameter (Resource) and reason code (SubResource). Every other operation
// increments operations_total and records its duration; parses also record
// the number of filter keys (Size).
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	if m == nil {
		return
	}

	if ctx.Operation == operationDiagnostic {
		m.diagnosticsTotal.WithLabelValues(ctx.Component, ctx.Resource, ctx.SubResource).Inc()
		return
	}

	status := "success"
	if ctx.Error != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	m.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Operation == operationParse {
		m.filterKeys.WithLabelValues(ctx.Component).Observe(float64(ctx.Size))
	}
}
