package postgres

import "errors"

var (
	// ErrUnsupportedOperator is added to the gorm.DB when a filter uses an
	// operator that has no SQL translation.
	ErrUnsupportedOperator = errors.New("unsupported filter operator")

	// ErrInvalidColumn is added when a field name is not a plain, optionally
	// dotted, identifier.
	ErrInvalidColumn = errors.New("invalid column name")
)
