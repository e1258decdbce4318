package qdrant

import "errors"

var (
	// ErrUnsupportedOperator is returned for operators without a payload
	// filter counterpart, such as $regex.
	ErrUnsupportedOperator = errors.New("unsupported filter operator")

	// ErrUnsupportedValue is returned when a value cannot be matched against
	// a payload, for example a list mixing strings and numbers.
	ErrUnsupportedValue = errors.New("unsupported filter value")
)
