package observability

import "time"

// Observer receives one notification per observed operation.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single observed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "queryparser".
	Component string

	// Operation is the action performed, e.g. "parse" or "diagnostic".
	Operation string

	// Resource is the primary object of the operation, e.g. a parameter name.
	Resource string

	// SubResource carries additional context such as a failure reason.
	SubResource string

	Duration time.Duration

	// Error is set when the operation failed or degraded.
	Error error

	// Size is an operation specific magnitude, e.g. the number of filter keys.
	Size int64

	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
