package queryparser

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// OperatorSigil prefixes logical operator names in a filter.
const OperatorSigil = "$"

// Members of a condition group.
const (
	conditionOperator = "key"
	conditionArray    = "array"
	conditionField    = "key"
	conditionValue    = "value"
)

// compileCondition turns the condition parameter into one logical group:
//
//	{"key":"or","array":[{"key":"status","value":"active"},{"key":"status","value":"pending"}]}
//	  -> {$or: [{status: "active"}, {status: "pending"}]}
//
// Identifier-shaped values are coerced; everything else is used verbatim.
//
// A group whose array is empty, or whose entries all lack a key or value,
// contributes no clause at all rather than an empty {$or: []}, which the
// store rejects. Such a group is reported as ErrEmptyCondition.
func (p *Parser) compileCondition(raw any, diags *diagnostics) bson.M {
	v := Inspect(raw)
	if v.IsEmpty() {
		return nil
	}

	decoded, err := v.Decode()
	if err != nil {
		diags.add(KeyCondition, err, "")
		return nil
	}

	group, ok := asObject(decoded)
	if !ok {
		diags.addf(KeyCondition, ErrTypeMismatch, "expected an object, got %T", decoded)
		return nil
	}

	rawOp, ok := group[conditionOperator]
	if !ok {
		diags.add(KeyCondition, ErrIncompleteEntry, "missing operator key")
		return nil
	}
	op, ok := rawOp.(string)
	op = strings.TrimPrefix(op, OperatorSigil)
	if !ok || op == "" {
		diags.add(KeyCondition, ErrTypeMismatch, "operator key must be a non-empty string")
		return nil
	}

	items, ok := asList(group[conditionArray])
	if !ok {
		diags.add(KeyCondition, ErrIncompleteEntry, "array must be a list")
		return nil
	}

	clauses := make(bson.A, 0, len(items))
	for i, item := range items {
		entry, ok := asObject(item)
		if !ok {
			diags.addf(KeyCondition, ErrTypeMismatch, "entry %d: expected an object, got %T", i, item)
			continue
		}

		rawField, hasField := entry[conditionField]
		value, hasValue := entry[conditionValue]
		if !hasField || !hasValue {
			continue
		}

		field, ok := rawField.(string)
		if !ok || field == "" {
			diags.addf(KeyCondition, ErrTypeMismatch, "entry %d: key must be a non-empty string", i)
			continue
		}

		if p.coercer.IsIdentifier(value) {
			id, err := p.coercer.Coerce(value)
			if err != nil {
				diags.addf(KeyCondition, err, "entry %d (%s)", i, field)
				continue
			}
			value = id
		}
		clauses = append(clauses, bson.M{field: cloneValue(value)})
	}

	if len(clauses) == 0 {
		diags.addf(KeyCondition, ErrEmptyCondition, "%s%s", OperatorSigil, op)
		return nil
	}
	return bson.M{OperatorSigil + op: clauses}
}
