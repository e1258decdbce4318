// Package qdrant translates parsed query parameters into Qdrant payload
// filters.
//
// A parsed filter is a document-store expression. This package maps it onto
// *qdrant.Filter so the same request parameters can narrow a vector search:
//
//   - field: "x"            -> match keyword
//   - field: true / 3       -> match bool / integer
//   - field: [a, b]         -> match any of keywords or integers
//   - $eq / $ne             -> match in Must / MustNot
//   - $in / $nin            -> match any / match except
//   - $gt $gte $lt $lte     -> numeric range, or datetime range for RFC 3339 values
//   - $and                  -> nested filters in Must
//   - $or                   -> one nested filter holding Should
//   - $nor                  -> nested filters in MustNot
//
// Regular expressions have no payload counterpart. Such clauses are skipped,
// and the returned error (joined with errors.Join) names each of them; the
// filter built from the remaining clauses is returned alongside.
//
// # Basic Usage
//
//	import (
//	    qc "github.com/qdrant/go-client/qdrant"
//
//	    "github.com/Aleph-Alpha/querystd/v1/queryparser"
//	    "github.com/Aleph-Alpha/querystd/v1/qdrant"
//	)
//
//	q := queryparser.Parse(params)
//	filter, err := qdrant.BuildFilter(q)
//	if err != nil {
//	    log.Warn("some clauses were skipped", err, nil)
//	}
//
//	points, err := client.Query(ctx, &qc.QueryPoints{
//	    CollectionName: "documents",
//	    Query:          qc.NewQuery(vector...),
//	    Filter:         filter,
//	})
//
// # User Fields
//
// Payloads keep system fields at the top level and user metadata under a
// prefix ("custom" by default). Fields listed in Config.UserFields are
// resolved under that prefix:
//
//	tr := qdrant.NewTranslator(qdrant.Config{
//	    UserPayloadPrefix: "custom",
//	    UserFields:        []string{"document_id"},
//	})
//	filter, err := tr.BuildFilter(q) // document_id -> custom.document_id
package qdrant
