package queryparser

import (
	"errors"
	"fmt"
)

// Reasons recorded in a Diagnostic. None of them is ever returned from
// Parse; they describe why a parameter contributed less than it asked for.
var (
	// ErrMalformedValue is recorded when a JSON-encoded parameter cannot be decoded.
	ErrMalformedValue = errors.New("malformed encoded value")

	// ErrTypeMismatch is recorded when a decoded value has the wrong shape,
	// e.g. an object where a list was expected.
	ErrTypeMismatch = errors.New("unexpected value type")

	// ErrIncompleteEntry is recorded when a required member is missing.
	ErrIncompleteEntry = errors.New("incomplete entry")

	// ErrInvalidIdentifier is recorded when a value cannot be coerced to the
	// store identifier type.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidPattern is recorded when a regex pattern does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrEmptyCondition is recorded when a condition group ends up without
	// any sub-clause.
	ErrEmptyCondition = errors.New("empty condition group")

	// ErrInternal is recorded when a compiler stage panicked.
	ErrInternal = errors.New("internal compiler failure")
)

// Diagnostic records one degraded parameter. Diagnostic implements error so
// callers can use errors.Is against the reasons above.
type Diagnostic struct {
	// Param is the reserved parameter the diagnostic belongs to.
	Param string

	// Reason wraps one of the package level errors.
	Reason error

	// Detail is a short human readable hint, e.g. the entry index.
	Detail string
}

func (d Diagnostic) Error() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %v", d.Param, d.Reason)
	}
	return fmt.Sprintf("%s: %v (%s)", d.Param, d.Reason, d.Detail)
}

func (d Diagnostic) Unwrap() error {
	return d.Reason
}

// diagnostics collects the diagnostics of a single Parse call.
type diagnostics struct {
	items []Diagnostic
}

func (d *diagnostics) add(param string, reason error, detail string) {
	d.items = append(d.items, Diagnostic{Param: param, Reason: reason, Detail: detail})
}

func (d *diagnostics) addf(param string, reason error, format string, args ...interface{}) {
	d.add(param, reason, fmt.Sprintf(format, args...))
}

// ReasonCode returns a stable, label friendly name for the reason of err,
// or "unknown" when err wraps none of the package level reasons.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrMalformedValue):
		return "malformed_value"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrIncompleteEntry):
		return "incomplete_entry"
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, ErrInvalidPattern):
		return "invalid_pattern"
	case errors.Is(err, ErrEmptyCondition):
		return "empty_condition"
	case errors.Is(err, ErrInternal):
		return "internal"
	default:
		return "unknown"
	}
}
