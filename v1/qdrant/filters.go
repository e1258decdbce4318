package qdrant

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

// FieldType indicates whether a field is internal or user-defined
type FieldType int

const (
	// InternalField - system-managed fields stored at top-level
	InternalField FieldType = iota
	// UserField - user-defined fields stored under the user payload prefix
	UserField
)

// Translator converts parsed filters into Qdrant payload filters. It holds
// only configuration and is safe for concurrent use.
type Translator struct {
	prefix     string
	userFields map[string]struct{}
}

// NewTranslator creates a Translator for cfg.
func NewTranslator(cfg Config) *Translator {
	if cfg.UserPayloadPrefix == "" {
		cfg.UserPayloadPrefix = DefaultUserPayloadPrefix
	}
	fields := make(map[string]struct{}, len(cfg.UserFields))
	for _, f := range cfg.UserFields {
		fields[f] = struct{}{}
	}
	return &Translator{prefix: cfg.UserPayloadPrefix, userFields: fields}
}

var defaultTranslator = NewTranslator(DefaultConfig())

// BuildFilter translates the filter of q with the default configuration.
func BuildFilter(q *queryparser.Query) (*qdrant.Filter, error) {
	return defaultTranslator.BuildFilter(q)
}

// BuildFilter translates the filter of q into a Qdrant filter.
//
// Clauses that cannot be expressed (regular expressions, unknown operators,
// mixed-type lists) are skipped; the returned error joins one error per
// skipped clause, and the filter built from the remaining clauses is still
// returned. The filter is nil when no clause survives.
func (t *Translator) BuildFilter(q *queryparser.Query) (*qdrant.Filter, error) {
	return t.Translate(q.Filter())
}

// Translate converts a filter document. Keys are processed in sorted order.
func (t *Translator) Translate(filter bson.M) (*qdrant.Filter, error) {
	set, err := t.filterSet(filter)
	return buildFilter(set), err
}

// fieldType classifies key according to the configured user fields.
func (t *Translator) fieldType(key string) FieldType {
	if _, ok := t.userFields[key]; ok {
		return UserField
	}
	return InternalField
}

// resolveFieldKey returns the full payload path of key.
// Internal fields: "search_store_id" -> "search_store_id"
// User fields: "document_id" -> "custom.document_id"
func (t *Translator) resolveFieldKey(key string) string {
	if t.fieldType(key) == UserField {
		if strings.HasPrefix(key, t.prefix+".") {
			return key
		}
		return t.prefix + "." + key
	}
	return key
}

// conditionSet holds conditions for a single clause
type conditionSet struct {
	conditions []*qdrant.Condition
}

func (cs *conditionSet) add(c ...*qdrant.Condition) {
	cs.conditions = append(cs.conditions, c...)
}

// filterSet mirrors Qdrant's Must (AND) and MustNot (NOT). Should (OR) only
// appears inside nested filters built for $or.
type filterSet struct {
	must    conditionSet
	mustNot conditionSet
}

func (t *Translator) filterSet(filter bson.M) (*filterSet, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := &filterSet{}
	var errs []error
	for _, key := range keys {
		if err := t.addField(set, key, filter[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return set, errors.Join(errs...)
}

func (t *Translator) addField(set *filterSet, key string, value any) error {
	switch key {
	case "$and", "$or", "$nor":
		return t.addLogical(set, key, value)
	}
	if strings.HasPrefix(key, queryparser.OperatorSigil) {
		return fmt.Errorf("%w: %s", ErrUnsupportedOperator, key)
	}

	field := t.resolveFieldKey(key)
	if doc, ok := operatorDocument(value); ok {
		return t.addOperators(set, key, field, doc)
	}
	if items, ok := listItems(value); ok {
		c, err := matchAny(field, items)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		set.must.add(c)
		return nil
	}
	c, err := match(field, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	set.must.add(c)
	return nil
}

// addLogical maps $and to Must, $or to a nested Should filter and $nor to
// MustNot. Each member document becomes a nested filter.
func (t *Translator) addLogical(set *filterSet, op string, value any) error {
	items, ok := listItems(value)
	if !ok {
		return fmt.Errorf("%w: %s expects a list", ErrUnsupportedValue, op)
	}

	var errs []error
	parts := make([]*qdrant.Condition, 0, len(items))
	for _, item := range items {
		sub, ok := document(item)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s expects documents", ErrUnsupportedValue, op))
			continue
		}
		subSet, err := t.filterSet(sub)
		if err != nil {
			errs = append(errs, err)
		}
		if f := buildFilter(subSet); f != nil {
			parts = append(parts, qdrant.NewFilterAsCondition(f))
		}
	}

	if len(parts) > 0 {
		switch op {
		case "$and":
			set.must.add(parts...)
		case "$or":
			set.must.add(qdrant.NewFilterAsCondition(&qdrant.Filter{Should: parts}))
		default:
			set.mustNot.add(parts...)
		}
	}
	return errors.Join(errs...)
}

func (t *Translator) addOperators(set *filterSet, key, field string, doc bson.D) error {
	var errs []error
	bounds := rangeBounds{}

	for _, e := range doc {
		var err error
		switch e.Key {
		case "$eq":
			var c *qdrant.Condition
			if c, err = match(field, e.Value); err == nil {
				set.must.add(c)
			}
		case "$ne":
			var c *qdrant.Condition
			if c, err = match(field, e.Value); err == nil {
				set.mustNot.add(c)
			}
		case "$in":
			err = addList(&set.must, field, e.Value, matchAny)
		case "$nin":
			err = addList(&set.must, field, e.Value, matchExcept)
		case "$gt", "$gte", "$lt", "$lte":
			err = bounds.set(e.Key, e.Value)
		case queryparser.RegexOperator:
			err = fmt.Errorf("%w: %s", ErrUnsupportedOperator, e.Key)
		case queryparser.RegexOptions:
		default:
			err = fmt.Errorf("%w: %s", ErrUnsupportedOperator, e.Key)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if c, err := bounds.condition(field); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", key, err))
	} else if c != nil {
		set.must.add(c)
	}
	return errors.Join(errs...)
}

func addList(cs *conditionSet, field string, value any, build func(string, []any) (*qdrant.Condition, error)) error {
	items, ok := listItems(value)
	if !ok {
		return fmt.Errorf("%w: expected a list", ErrUnsupportedValue)
	}
	c, err := build(field, items)
	if err != nil {
		return err
	}
	cs.add(c)
	return nil
}

// match builds an equality condition. Whole floats match as integers; other
// floats become a closed range.
func match(field string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(field, v), nil
	case primitive.ObjectID:
		return qdrant.NewMatch(field, v.Hex()), nil
	case bool:
		return qdrant.NewMatchBool(field, v), nil
	case int:
		return qdrant.NewMatchInt(field, int64(v)), nil
	case int32:
		return qdrant.NewMatchInt(field, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(field, v), nil
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
			return qdrant.NewMatchInt(field, int64(v)), nil
		}
		return qdrant.NewRange(field, &qdrant.Range{Gte: &v, Lte: &v}), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// matchAny matches if value is one of the given values (IN operator).
// Applicable to keyword (string) and integer payloads.
func matchAny(field string, items []any) (*qdrant.Condition, error) {
	if keywords, ok := keywordList(items); ok {
		return qdrant.NewMatchKeywords(field, keywords...), nil
	}
	if ints, ok := intList(items); ok {
		return qdrant.NewMatchInts(field, ints...), nil
	}
	return nil, fmt.Errorf("%w: list must hold only strings or only integers", ErrUnsupportedValue)
}

// matchExcept matches if value is NOT one of the given values (NOT IN operator).
func matchExcept(field string, items []any) (*qdrant.Condition, error) {
	if keywords, ok := keywordList(items); ok {
		return qdrant.NewMatchExceptKeywords(field, keywords...), nil
	}
	if ints, ok := intList(items); ok {
		return qdrant.NewMatchExceptInts(field, ints...), nil
	}
	return nil, fmt.Errorf("%w: list must hold only strings or only integers", ErrUnsupportedValue)
}

func keywordList(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case primitive.ObjectID:
			out = append(out, v.Hex())
		default:
			return nil, false
		}
	}
	return out, true
}

func intList(items []any) ([]int64, bool) {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case int:
			out = append(out, int64(v))
		case int32:
			out = append(out, int64(v))
		case int64:
			out = append(out, v)
		default:
			return nil, false
		}
	}
	return out, true
}

// rangeBounds collects $gt/$gte/$lt/$lte of one field. Bounds are either all
// numeric or all timestamps.
type rangeBounds struct {
	numbers map[string]float64
	times   map[string]time.Time
}

func (b *rangeBounds) set(op string, value any) error {
	if f, ok := number(value); ok {
		if b.numbers == nil {
			b.numbers = map[string]float64{}
		}
		b.numbers[op] = f
		return nil
	}
	if ts, ok := timestamp(value); ok {
		if b.times == nil {
			b.times = map[string]time.Time{}
		}
		b.times[op] = ts
		return nil
	}
	return fmt.Errorf("%w: %s expects a number or an RFC 3339 time", ErrUnsupportedValue, op)
}

func (b *rangeBounds) condition(field string) (*qdrant.Condition, error) {
	switch {
	case b.numbers != nil && b.times != nil:
		return nil, fmt.Errorf("%w: range mixes numbers and times", ErrUnsupportedValue)
	case b.numbers != nil:
		r := &qdrant.Range{}
		for op, f := range b.numbers {
			switch op {
			case "$gt":
				r.Gt = &f
			case "$gte":
				r.Gte = &f
			case "$lt":
				r.Lt = &f
			case "$lte":
				r.Lte = &f
			}
		}
		return qdrant.NewRange(field, r), nil
	case b.times != nil:
		r := &qdrant.DatetimeRange{}
		for op, ts := range b.times {
			switch op {
			case "$gt":
				r.Gt = timestamppb.New(ts)
			case "$gte":
				r.Gte = timestamppb.New(ts)
			case "$lt":
				r.Lt = timestamppb.New(ts)
			case "$lte":
				r.Lte = timestamppb.New(ts)
			}
		}
		return qdrant.NewDatetimeRange(field, r), nil
	default:
		return nil, nil
	}
}

// number accepts numeric values and numeric strings, as bracket syntax
// delivers every value as a string.
func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func timestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		ts, err := time.Parse(time.RFC3339, t)
		return ts, err == nil
	default:
		return time.Time{}, false
	}
}

// buildFilter constructs a Qdrant filter from a filterSet
func buildFilter(set *filterSet) *qdrant.Filter {
	if set == nil {
		return nil
	}

	filter := &qdrant.Filter{
		Must:    set.must.conditions,
		MustNot: set.mustNot.conditions,
	}

	// Return nil if no conditions were added
	if len(filter.Must) == 0 && len(filter.MustNot) == 0 {
		return nil
	}
	return filter
}

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

func document(v any) (bson.M, bool) {
	switch t := v.(type) {
	case bson.M:
		return t, true
	case map[string]any:
		return bson.M(t), true
	case bson.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return m, true
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

func listItems(v any) ([]any, bool) {
	switch t := v.(type) {
	case bson.A:
		return []any(t), true
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
