// Package observability defines the hook that std packages use to report
// the operations they perform to metrics or tracing backends.
//
// A package that supports observation accepts an [Observer] (usually through a
// WithObserver method) and calls it once per operation with an
// [OperationContext]. Observers are optional; every package treats a nil
// observer as "do nothing".
//
// Example:
//
//	type printObserver struct{}
//
//	func (printObserver) ObserveOperation(ctx observability.OperationContext) {
//	    fmt.Println(ctx.Component, ctx.Operation, ctx.Duration)
//	}
//
//	parser := queryparser.NewParser(queryparser.DefaultConfig(), log).
//	    WithObserver(printObserver{})
package observability
