package queryparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
		raw  string
	}{
		{name: "nil", in: nil, kind: KindAbsent},
		{name: "string", in: "name", kind: KindString, raw: "name"},
		{name: "empty string", in: "", kind: KindString, raw: ""},
		{name: "empty slice", in: []string{}, kind: KindAbsent},
		{name: "single element slice", in: []string{"name"}, kind: KindString, raw: "name"},
		{name: "multi element slice", in: []string{"a", "b"}, kind: KindStructured},
		{name: "document", in: bson.D{{Key: "name", Value: "asc"}}, kind: KindStructured},
		{name: "map", in: map[string]any{"a": 1}, kind: KindStructured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Inspect(tt.in)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.raw, v.Raw)
		})
	}
}

func TestValue_IsEmpty(t *testing.T) {
	assert.True(t, Inspect(nil).IsEmpty())
	assert.True(t, Inspect("").IsEmpty())
	assert.False(t, Inspect("x").IsEmpty())
	assert.False(t, Inspect(bson.A{}).IsEmpty())
}

func TestValue_DecodeStructuredPassesThrough(t *testing.T) {
	in := bson.A{"a", "b"}
	out, err := Inspect(in).Decode()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeJSON_Numbers(t *testing.T) {
	out, err := DecodeJSON(`{"count": 3, "ratio": 0.5, "big": 12345678901}`)
	require.NoError(t, err)

	m := out.(map[string]any)
	assert.Equal(t, int64(3), m["count"])
	assert.Equal(t, 0.5, m["ratio"])
	assert.Equal(t, int64(12345678901), m["big"])
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for _, raw := range []string{`[{"key":`, `{"a":1} trailing`, `not json`, ``} {
		_, err := DecodeJSON(raw)
		assert.Truef(t, errors.Is(err, ErrMalformedValue), "input %q: expected ErrMalformedValue, got %v", raw, err)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "absent", KindAbsent.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "structured", KindStructured.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
