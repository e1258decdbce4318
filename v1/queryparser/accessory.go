package queryparser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
)

// populationPath is the member of a population object naming the relation.
const populationPath = "path"

// resolveSelection returns the projected field names. Strings are split on
// commas and whitespace ("name,email" or "name -password"); lists are
// flattened the same way.
func resolveSelection(raw any, diags *diagnostics) []string {
	v := Inspect(raw)
	switch v.Kind {
	case KindAbsent:
		return nil
	case KindString:
		return splitFields(v.Raw)
	}

	items, ok := asList(v.Structure)
	if !ok {
		diags.addf(KeySelection, ErrTypeMismatch, "expected a list, got %T", v.Structure)
		return nil
	}

	var fields []string
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			diags.addf(KeySelection, ErrTypeMismatch, "entry %d: expected a string, got %T", i, item)
			continue
		}
		fields = append(fields, splitFields(s)...)
	}
	return fields
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// projectionOf turns a selection into a projection document. A leading
// minus excludes the field.
func projectionOf(selection []string) bson.D {
	if len(selection) == 0 {
		return nil
	}
	doc := make(bson.D, 0, len(selection))
	for _, field := range selection {
		if name, excluded := strings.CutPrefix(field, "-"); excluded {
			if name != "" {
				doc = append(doc, bson.E{Key: name, Value: 0})
			}
			continue
		}
		doc = append(doc, bson.E{Key: field, Value: 1})
	}
	return doc
}

// resolvePopulation returns the relations to expand. Structured lists are
// used as they are. JSON strings may hold a name, a list of names, or
// objects with a path; other strings are read as a field list like
// selection. Malformed JSON yields no relations.
func resolvePopulation(raw any, diags *diagnostics) []string {
	v := Inspect(raw)
	if v.IsEmpty() {
		return nil
	}
	if v.Kind == KindString && !looksLikeJSON(v.Raw) {
		return splitFields(v.Raw)
	}

	decoded, err := v.Decode()
	if err != nil {
		diags.add(KeyPopulation, err, "")
		return nil
	}

	var out []string
	if err := collectRelations(decoded, &out); err != nil {
		diags.add(KeyPopulation, err, "")
		return nil
	}
	return out
}

func collectRelations(v any, out *[]string) error {
	switch t := v.(type) {
	case string:
		if t != "" {
			*out = append(*out, t)
		}
		return nil
	}

	if obj, ok := asObject(v); ok {
		path, ok := obj[populationPath].(string)
		if !ok || path == "" {
			return fmt.Errorf("%w: object without %s", ErrIncompleteEntry, populationPath)
		}
		*out = append(*out, path)
		return nil
	}

	if items, ok := asList(v); ok {
		for _, item := range items {
			if err := collectRelations(item, out); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
}

// resolveSearch returns the opaque full-text search term.
func resolveSearch(raw any) (string, bool) {
	v := Inspect(raw)
	if v.Kind != KindString || v.Raw == "" {
		return "", false
	}
	return v.Raw, true
}

// Truthy interprets a boolean-like parameter the way the all flag is read:
// absent and empty values are false, strconv.ParseBool literals mean what
// they say, and any other non-empty value is true.
func Truthy(raw any) bool {
	switch t := raw.(type) {
	case nil:
		return false
	case bool:
		return t
	}

	v := Inspect(raw)
	switch v.Kind {
	case KindAbsent:
		return false
	case KindString:
		if v.Raw == "" {
			return false
		}
		if b, err := strconv.ParseBool(v.Raw); err == nil {
			return b
		}
		return true
	default:
		return true
	}
}
