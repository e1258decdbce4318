package queryparser

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Sort directions.
const (
	Ascending  = 1
	Descending = -1
)

// resolveSort turns the sort parameter into an ordered sort document.
//
//	?sort=name                      -> {name: 1}
//	?sort={"name":"desc"}           -> {name: -1}
//	?sort[name]=desc&sort[age]=asc  -> {name: -1, age: 1}
//	(absent)                        -> {createdAt: -1}
func (p *Parser) resolveSort(raw any, diags *diagnostics) bson.D {
	v := Inspect(raw)
	if v.IsEmpty() {
		return p.defaultSort()
	}

	switch v.Kind {
	case KindString:
		doc, ok := decodeSortDocument(v.Raw)
		if !ok {
			// A plain field name is the documented short form, not a failure.
			p.debug("sort is not a JSON document, sorting ascending by field", map[string]interface{}{
				"field": v.Raw,
			})
			return bson.D{{Key: v.Raw, Value: Ascending}}
		}
		return normalizeDirections(lastKeyWins(doc))
	default:
		doc, ok := asDocument(v.Structure)
		if !ok {
			diags.addf(KeySort, ErrTypeMismatch, "expected a mapping, got %T", v.Structure)
			return p.defaultSort()
		}
		return normalizeDirections(doc)
	}
}

// decodeSortDocument strictly decodes raw as a JSON object. The strict
// decode rejects trailing data; the extended JSON decode keeps key order.
func decodeSortDocument(raw string) (bson.D, bool) {
	if _, err := DecodeJSON(raw); err != nil {
		return nil, false
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON([]byte(raw), false, &doc); err != nil {
		return nil, false
	}
	return doc, true
}

// lastKeyWins collapses repeated keys: the last value is kept at the
// position of the first occurrence.
func lastKeyWins(doc bson.D) bson.D {
	seen := make(map[string]int, len(doc))
	out := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if i, ok := seen[e.Key]; ok {
			out[i].Value = e.Value
			continue
		}
		seen[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}

func (p *Parser) defaultSort() bson.D {
	return bson.D{{Key: p.cfg.DefaultSortField, Value: p.cfg.DefaultSortDirection}}
}

// normalizeDirections maps string directions to 1/-1 and keeps every other
// direction as is. The input is not modified.
func normalizeDirections(doc bson.D) bson.D {
	out := make(bson.D, len(doc))
	for i, e := range doc {
		if dir, ok := e.Value.(string); ok {
			out[i] = bson.E{Key: e.Key, Value: directionOf(dir)}
			continue
		}
		out[i] = bson.E{Key: e.Key, Value: cloneValue(e.Value)}
	}
	return out
}

func directionOf(s string) int {
	if strings.EqualFold(s, "asc") {
		return Ascending
	}
	return Descending
}
