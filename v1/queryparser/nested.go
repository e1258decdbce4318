package queryparser

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Members of a nested filter entry.
const (
	nestedKey     = "key"
	nestedValue   = "value"
	nestedIsValue = "isValue"
	nestedInArray = "in_array"
)

// compileNested turns the nested parameter into membership clauses:
//
//	[{"key":"tags","value":{"in_array":["a","b"]},"isValue":true}]
//	  -> {tags: {$in: ["a", "b"]}}
//
// Without isValue every element is coerced to the store identifier type.
// An entry whose elements cannot all be coerced is dropped as a whole.
func (p *Parser) compileNested(raw any, diags *diagnostics) bson.M {
	v := Inspect(raw)
	if v.IsEmpty() {
		return nil
	}

	decoded, err := v.Decode()
	if err != nil {
		diags.add(KeyNested, err, "")
		return nil
	}

	entries, ok := asList(decoded)
	if !ok {
		diags.addf(KeyNested, ErrTypeMismatch, "expected a list, got %T", decoded)
		return nil
	}

	out := bson.M{}
	for i, item := range entries {
		entry, ok := asObject(item)
		if !ok {
			diags.addf(KeyNested, ErrTypeMismatch, "entry %d: expected an object, got %T", i, item)
			continue
		}

		rawKey, hasKey := entry[nestedKey]
		rawValue, hasValue := entry[nestedValue]
		if !hasKey || !hasValue {
			continue
		}

		field, ok := rawKey.(string)
		if !ok || field == "" {
			diags.addf(KeyNested, ErrTypeMismatch, "entry %d: key must be a non-empty string", i)
			continue
		}

		valueObj, ok := asObject(rawValue)
		if !ok {
			diags.addf(KeyNested, ErrTypeMismatch, "entry %d: value must be an object", i)
			continue
		}

		members, ok := asList(valueObj[nestedInArray])
		if !ok {
			diags.addf(KeyNested, ErrIncompleteEntry, "entry %d: value.%s must be a list", i, nestedInArray)
			continue
		}

		if _, verbatim := entry[nestedIsValue]; verbatim {
			out[field] = bson.M{"$in": toArray(members)}
			continue
		}

		coerced, err := p.coerceAll(members)
		if err != nil {
			diags.addf(KeyNested, err, "entry %d (%s)", i, field)
			continue
		}
		out[field] = bson.M{"$in": coerced}
	}
	return out
}

func (p *Parser) coerceAll(members []any) (bson.A, error) {
	out := make(bson.A, 0, len(members))
	for _, m := range members {
		id, err := p.coercer.Coerce(m)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func toArray(items []any) bson.A {
	out := make(bson.A, len(items))
	for i, item := range items {
		out[i] = cloneValue(item)
	}
	return out
}
