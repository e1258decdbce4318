package queryparser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind classifies a raw parameter value.
type Kind int

const (
	// KindAbsent means the parameter is missing or empty.
	KindAbsent Kind = iota
	// KindString means the value arrived as a plain (possibly JSON-encoded) string.
	KindString
	// KindStructured means the transport already produced a structure.
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the tagged form of a raw parameter value. Compilers branch on
// Kind instead of inspecting dynamic types themselves.
type Value struct {
	Kind Kind

	// Raw holds the string form when Kind is KindString.
	Raw string

	// Structure holds the transport structure when Kind is KindStructured.
	Structure any
}

// Inspect classifies a raw parameter value. A single element []string, as
// produced by url.Values, is treated as a plain string.
func Inspect(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{Kind: KindAbsent}
	case string:
		return Value{Kind: KindString, Raw: t}
	case []string:
		switch len(t) {
		case 0:
			return Value{Kind: KindAbsent}
		case 1:
			return Value{Kind: KindString, Raw: t[0]}
		default:
			return Value{Kind: KindStructured, Structure: t}
		}
	default:
		return Value{Kind: KindStructured, Structure: v}
	}
}

// IsEmpty reports whether the value is absent or an empty string.
func (v Value) IsEmpty() bool {
	return v.Kind == KindAbsent || (v.Kind == KindString && v.Raw == "")
}

// Decode returns the structure of v. Structured values are returned as is;
// strings are decoded as strict JSON. Absent values decode to nil.
func (v Value) Decode() (any, error) {
	switch v.Kind {
	case KindStructured:
		return v.Structure, nil
	case KindString:
		return DecodeJSON(v.Raw)
	default:
		return nil, nil
	}
}

// DecodeJSON strictly decodes a JSON document. Trailing data is rejected and
// integral numbers are returned as int64, all other numbers as float64.
// Failures wrap ErrMalformedValue.
func DecodeJSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedValue)
	}
	return normalizeNumbers(out), nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}

// looksLikeJSON reports whether s starts like a JSON array, object or string.
func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch s[0] {
	case '[', '{', '"':
		return true
	default:
		return false
	}
}
