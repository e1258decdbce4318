package queryparser

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// Params is the raw parameter map of a single request, as produced by the
// transport layer. Values are strings, []string, or structures built from
// bracket syntax (bson.D, bson.M, map[string]any, bson.A, []any).
//
// The parser never modifies a Params value.
type Params map[string]any

// Get returns the raw value stored under key.
func (p Params) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// passThrough copies every non-reserved parameter into a new filter.
func (p Params) passThrough() bson.M {
	out := make(bson.M, len(p))
	for k, v := range p {
		if IsReserved(k) {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep copies the container types a filter can hold, so results
// never share mutable state with the caller's input.
func cloneValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(bson.M, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case bson.D:
		out := make(bson.D, len(t))
		for i, e := range t {
			out[i] = bson.E{Key: e.Key, Value: cloneValue(e.Value)}
		}
		return out
	case bson.A:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// asList views v as a list. Both decoded JSON arrays and transport level
// arrays are accepted.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case bson.A:
		return []any(t), true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

// asObject views v as an unordered object.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case bson.M:
		return map[string]any(t), true
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

// asDocument views v as an ordered document. Unordered maps are ordered by
// key so the result is deterministic.
func asDocument(v any) (bson.D, bool) {
	switch t := v.(type) {
	case bson.D:
		return t, true
	case bson.M:
		return sortedDocument(t), true
	case map[string]any:
		return sortedDocument(t), true
	default:
		return nil, false
	}
}

func sortedDocument(m map[string]any) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: m[k]})
	}
	return doc
}
