package queryparser

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Query is the interpreted form of one request's parameters. It is built
// once by Parse and never changes afterwards; every accessor returns a copy.
type Query struct {
	filter      bson.M
	sort        bson.D
	selection   []string
	projection  bson.D
	population  []string
	search      string
	hasSearch   bool
	getAll      bool
	hints       map[string]any
	diagnostics []Diagnostic
}

// Filter returns the store filter. It always contains the soft delete
// predicate and never contains a reserved key.
func (q *Query) Filter() bson.M {
	return cloneValue(q.filter).(bson.M)
}

// Sort returns the ordered sort document.
func (q *Query) Sort() bson.D {
	if q.sort == nil {
		return bson.D{}
	}
	return cloneValue(q.sort).(bson.D)
}

// Selection returns the requested field names, in request order. An empty
// selection means all fields.
func (q *Query) Selection() []string {
	return append([]string{}, q.selection...)
}

// Projection returns the selection as a projection document, {field: 1} for
// included fields and {field: 0} for fields written as -field.
func (q *Query) Projection() bson.D {
	if q.projection == nil {
		return nil
	}
	return cloneValue(q.projection).(bson.D)
}

// Population returns the relations to expand.
func (q *Query) Population() []string {
	return append([]string{}, q.population...)
}

// Search returns the full-text search term, if one was given.
func (q *Query) Search() (string, bool) {
	return q.search, q.hasSearch
}

// GetAll reports whether the caller asked to bypass pagination.
func (q *Query) GetAll() bool {
	return q.getAll
}

// Hint returns the raw value of a pagination hint (perPage, page, limit or
// includes). The parser does not interpret hints.
func (q *Query) Hint(key string) (any, bool) {
	v, ok := q.hints[key]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// Diagnostics returns the parameters that were degraded while parsing.
func (q *Query) Diagnostics() []Diagnostic {
	return append([]Diagnostic{}, q.diagnostics...)
}
