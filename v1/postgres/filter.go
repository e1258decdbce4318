package postgres

import (
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

// Logical operators of a parsed filter.
const (
	opAnd = "$and"
	opOr  = "$or"
	opNor = "$nor"
)

// FilterExpressions translates a parsed filter into gorm clause expressions.
// Keys are processed in sorted order so the generated SQL is stable.
func FilterExpressions(filter bson.M) ([]clause.Expression, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	exprs := make([]clause.Expression, 0, len(keys))
	for _, key := range keys {
		expr, err := fieldExpression(key, filter[key])
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func fieldExpression(key string, value any) (clause.Expression, error) {
	switch key {
	case opAnd, opOr, opNor:
		return logicalExpression(key, value)
	}
	if strings.HasPrefix(key, queryparser.OperatorSigil) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperator, key)
	}

	col, err := column(key)
	if err != nil {
		return nil, err
	}

	if doc, ok := operatorDocument(value); ok {
		return operatorExpression(key, col, doc)
	}
	if list, ok := listValues(value); ok {
		return clause.IN{Column: col, Values: list}, nil
	}
	return clause.Eq{Column: col, Value: scalar(value)}, nil
}

func logicalExpression(op string, value any) (clause.Expression, error) {
	items, ok := listValues(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a list", ErrUnsupportedOperator, op)
	}

	parts := make([]clause.Expression, 0, len(items))
	for _, item := range items {
		sub, ok := item.(bson.M)
		if !ok {
			if m, isMap := item.(map[string]any); isMap {
				sub = bson.M(m)
			} else {
				return nil, fmt.Errorf("%w: %s expects documents", ErrUnsupportedOperator, op)
			}
		}
		exprs, err := FilterExpressions(sub)
		if err != nil {
			return nil, err
		}
		parts = append(parts, clause.And(exprs...))
	}

	switch op {
	case opAnd:
		return clause.And(parts...), nil
	case opOr:
		return clause.Or(parts...), nil
	default:
		return clause.Not(clause.Or(parts...)), nil
	}
}

func operatorExpression(key string, col clause.Column, doc bson.D) (clause.Expression, error) {
	var options string
	for _, e := range doc {
		if e.Key == queryparser.RegexOptions {
			options, _ = e.Value.(string)
		}
	}

	exprs := make([]clause.Expression, 0, len(doc))
	for _, e := range doc {
		switch e.Key {
		case "$eq":
			exprs = append(exprs, clause.Eq{Column: col, Value: scalar(e.Value)})
		case "$ne":
			exprs = append(exprs, clause.Neq{Column: col, Value: scalar(e.Value)})
		case "$gt":
			exprs = append(exprs, clause.Gt{Column: col, Value: scalar(e.Value)})
		case "$gte":
			exprs = append(exprs, clause.Gte{Column: col, Value: scalar(e.Value)})
		case "$lt":
			exprs = append(exprs, clause.Lt{Column: col, Value: scalar(e.Value)})
		case "$lte":
			exprs = append(exprs, clause.Lte{Column: col, Value: scalar(e.Value)})
		case "$in", "$nin":
			list, ok := listValues(e.Value)
			if !ok {
				return nil, fmt.Errorf("%w: %s on %s expects a list", ErrUnsupportedOperator, e.Key, key)
			}
			var in clause.Expression = clause.IN{Column: col, Values: list}
			if e.Key == "$nin" {
				in = clause.Not(in)
			}
			exprs = append(exprs, in)
		case queryparser.RegexOperator:
			pattern, ok := e.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s on %s expects a string", ErrUnsupportedOperator, e.Key, key)
			}
			quoted, err := quoteColumn(key)
			if err != nil {
				return nil, err
			}
			op := "~"
			if strings.Contains(options, queryparser.CaseInsensitive) {
				op = "~*"
			}
			exprs = append(exprs, clause.Expr{SQL: quoted + " " + op + " ?", Vars: []interface{}{pattern}})
		case queryparser.RegexOptions:
		default:
			return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOperator, e.Key, key)
		}
	}

	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return clause.And(exprs...), nil
}

// operatorDocument returns v as an ordered document when it is a mapping.
// Unordered maps are sorted by key.
func operatorDocument(v any) (bson.D, bool) {
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

func listValues(v any) ([]interface{}, bool) {
	switch t := v.(type) {
	case bson.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = scalar(e)
		}
		return out, true
	case []any:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = scalar(e)
		}
		return out, true
	case []string:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// scalar renders store identifiers as their hex form; everything else is
// passed to the driver unchanged.
func scalar(v any) any {
	if id, ok := v.(primitive.ObjectID); ok {
		return id.Hex()
	}
	return v
}
