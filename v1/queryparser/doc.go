// Package queryparser interprets the query parameters of a list request into
// a store filter, a sort document and a handful of accessory directives.
//
// The parser is transport agnostic: it consumes a Params map (as produced by
// url.Values or by httpquery.ParseRawQuery for bracket syntax) and returns an
// immutable Query. It performs no I/O and never fails; parameters that cannot
// be interpreted degrade to an empty or default contribution and are listed
// in Query.Diagnostics.
//
// # Core Features
//
//   - Pass-through equality filters for every non-reserved parameter
//   - A mandatory soft delete predicate (deleted: false) that callers cannot override
//   - Sort resolution from a field name, a JSON document or bracket syntax
//   - Membership filters from the nested parameter
//   - Logical groups ($or, $and, $nor) from the condition parameter
//   - Case-insensitive pattern filters from the regex parameter
//   - Selection, projection, population, search and getAll directives
//   - Pluggable identifier coercion (ObjectID by default)
//   - Optional observer for metrics and structured logging of diagnostics
//
// # Reserved Parameters
//
// perPage, page, limit, sort, all, includes, selection, population, search,
// regex, nested and condition are interpreted by the parser and never reach
// the filter. perPage, page, limit and includes are exposed unchanged through
// Query.Hint.
//
// # Basic Usage
//
//	import (
//	    "github.com/Aleph-Alpha/querystd/v1/logger"
//	    "github.com/Aleph-Alpha/querystd/v1/queryparser"
//	)
//
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//	parser := queryparser.NewParser(queryparser.DefaultConfig(), log)
//
//	q := parser.Parse(queryparser.Params{
//	    "status":    "active",
//	    "sort":      `{"name":"asc"}`,
//	    "condition": `{"key":"or","array":[{"key":"role","value":"admin"},{"key":"role","value":"owner"}]}`,
//	})
//
//	q.Filter() // {status: "active", $or: [{role: "admin"}, {role: "owner"}], deleted: false}
//	q.Sort()   // {name: 1}
//
// # Parameter Formats
//
// sort:
//
//	?sort=name                       {name: 1}
//	?sort={"name":"desc","age":1}    {name: -1, age: 1}
//	?sort[name]=asc                  {name: 1}
//	(absent)                         {createdAt: -1}
//
// nested:
//
//	?nested=[{"key":"owner","value":{"in_array":["65a1...","65a2..."]}}]
//	    {owner: {$in: [ObjectID("65a1..."), ObjectID("65a2...")]}}
//	?nested=[{"key":"tag","value":{"in_array":["a","b"]},"isValue":true}]
//	    {tag: {$in: ["a", "b"]}}
//
// regex:
//
//	?regex=[{"key":"name","value":"^A"}]
//	    {name: {$regex: "^A", $options: "i"}}
//
// The regex parameter is only honoured in its string form. A value the
// transport already structured (regex[0][key]=name) is ignored.
//
// # Merge Order
//
// The filter is assembled from the pass-through parameters, then the nested,
// condition and regex fragments. On key collision a later fragment wins. The
// soft delete predicate is written last.
//
// # Diagnostics
//
// Each degraded parameter produces a Diagnostic carrying the parameter name
// and one of the package level reasons:
//
//	for _, d := range q.Diagnostics() {
//	    if errors.Is(d, queryparser.ErrMalformedValue) {
//	        // bad JSON in d.Param
//	    }
//	}
//
// Diagnostics are also logged at warn level and reported to the observer as
// "diagnostic" operations.
//
// # Identifier Coercion
//
// The nested compiler coerces every element of an entry without isValue,
// and the condition compiler coerces identifier-shaped values. The default
// ObjectIDCoercer understands 24 character hex strings. Other stores plug in
// their own:
//
//	parser.WithIdentifierCoercer(uuidCoercer{})
//
// # Thread Safety
//
// A configured Parser holds no mutable state; Parse may be called from any
// number of goroutines.
package queryparser
