package queryparser

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentifierCoercer decides which values are store identifiers and converts
// them to the store's native identifier type.
//
// The default implementation targets 12-byte ObjectIDs rendered as 24 hex
// characters. Deployments on a store with a different identifier encoding
// plug in their own implementation with Parser.WithIdentifierCoercer.
type IdentifierCoercer interface {
	// IsIdentifier reports whether v is shaped like a store identifier.
	IsIdentifier(v any) bool

	// Coerce converts v to the native identifier type. Values that cannot be
	// converted return an error wrapping ErrInvalidIdentifier.
	Coerce(v any) (any, error)
}

// ObjectIDCoercer is the default IdentifierCoercer.
type ObjectIDCoercer struct{}

// IsIdentifier reports whether v is a 24 character hex string or already an
// ObjectID.
func (ObjectIDCoercer) IsIdentifier(v any) bool {
	switch t := v.(type) {
	case primitive.ObjectID:
		return true
	case string:
		return IsObjectIDHex(t)
	default:
		return false
	}
}

// Coerce converts a hex string into a primitive.ObjectID.
func (ObjectIDCoercer) Coerce(v any) (any, error) {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t, nil
	case string:
		id, err := primitive.ObjectIDFromHex(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, t)
		}
		return id, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidIdentifier, v)
	}
}

// IsObjectIDHex reports whether s is exactly 24 hexadecimal characters.
func IsObjectIDHex(s string) bool {
	return primitive.IsValidObjectID(s)
}
