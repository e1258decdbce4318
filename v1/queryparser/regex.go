package queryparser

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"go.mongodb.org/mongo-driver/bson"
)

// Members of a regex entry and of the compiled clause.
const (
	regexField      = "key"
	regexPattern    = "value"
	RegexOperator   = "$regex"
	RegexOptions    = "$options"
	CaseInsensitive = "i"
)

// compileRegex turns the regex parameter into case-insensitive pattern
// clauses:
//
//	[{"key":"name","value":"^A"}] -> {name: {$regex: "^A", $options: "i"}}
//
// Only string-encoded input is accepted. A value the transport already
// structured (e.g. regex[0][key]=name) is ignored on purpose.
func (p *Parser) compileRegex(raw any, diags *diagnostics) bson.M {
	v := Inspect(raw)
	if v.IsEmpty() {
		return nil
	}
	if v.Kind != KindString {
		p.debug("ignoring structured regex parameter", map[string]interface{}{
			"type": fmt.Sprintf("%T", v.Structure),
		})
		return nil
	}

	decoded, err := v.Decode()
	if err != nil {
		diags.add(KeyRegex, err, "")
		return nil
	}

	entries, ok := asList(decoded)
	if !ok {
		diags.addf(KeyRegex, ErrTypeMismatch, "expected a list, got %T", decoded)
		return nil
	}

	out := bson.M{}
	for i, item := range entries {
		entry, ok := asObject(item)
		if !ok {
			diags.addf(KeyRegex, ErrTypeMismatch, "entry %d: expected an object, got %T", i, item)
			continue
		}

		rawField, hasField := entry[regexField]
		rawPattern, hasPattern := entry[regexPattern]
		if !hasField || !hasPattern {
			diags.addf(KeyRegex, ErrIncompleteEntry, "entry %d", i)
			continue
		}

		field, ok := rawField.(string)
		if !ok || field == "" {
			diags.addf(KeyRegex, ErrTypeMismatch, "entry %d: key must be a non-empty string", i)
			continue
		}
		pattern, ok := rawPattern.(string)
		if !ok {
			diags.addf(KeyRegex, ErrTypeMismatch, "entry %d: value must be a string", i)
			continue
		}

		if _, err := regexp2.Compile(pattern, regexp2.ECMAScript); err != nil {
			diags.addf(KeyRegex, fmt.Errorf("%w: %v", ErrInvalidPattern, err), "entry %d (%s)", i, field)
			continue
		}
		out[field] = bson.M{RegexOperator: pattern, RegexOptions: CaseInsensitive}
	}
	return out
}

// CompileClause returns a matcher equivalent to a regex clause produced by
// the parser, for callers that filter in memory. Patterns use the
// ECMAScript dialect, so lookarounds and backreferences are available.
// ok is false when clause is not a regex clause.
func CompileClause(clause any) (re *regexp2.Regexp, ok bool, err error) {
	m, isObj := asObject(clause)
	if !isObj {
		return nil, false, nil
	}
	pattern, isStr := m[RegexOperator].(string)
	if !isStr {
		return nil, false, nil
	}
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if o, _ := m[RegexOptions].(string); o == CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err = regexp2.Compile(pattern, opts)
	return re, true, err
}
