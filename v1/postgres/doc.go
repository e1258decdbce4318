// Package postgres translates parsed query parameters into gorm scopes for
// PostgreSQL.
//
// The queryparser package produces filters in document-store form. This
// package maps that form onto SQL through gorm's clause builders, so values
// are always bound as parameters and column names are validated before they
// reach a statement.
//
// Translation:
//   - field: value            -> "field" = ?
//   - field: [a, b]           -> "field" IN (?, ?)
//   - $eq $ne $gt $gte $lt $lte $in $nin -> the matching comparison
//   - $regex with $options "i" -> "field" ~* ? (~ without the option)
//   - $and / $or / $nor       -> AND / OR / NOT (... OR ...)
//   - ObjectIDs are bound as their hex form
//
// Anything else (geo operators, $exists, ...) adds ErrUnsupportedOperator to
// the gorm.DB. Field names that are not plain identifiers add
// ErrInvalidColumn.
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/querystd/v1/httpquery"
//		"github.com/Aleph-Alpha/querystd/v1/postgres"
//	)
//
//	func listProducts(w http.ResponseWriter, r *http.Request) {
//		q, _ := httpquery.FromContext(r.Context())
//		page := httpquery.PaginationFromQuery(q, httpquery.DefaultConfig())
//
//		var products []Product
//		err := db.WithContext(r.Context()).
//			Scopes(
//				postgres.Scope(q),
//				postgres.Search(q, "name", "description"),
//				postgres.Paginate(page),
//			).
//			Find(&products).Error
//		...
//	}
//
// Scope combines Filter, Sort, Selection and Population; each of them is
// also usable on its own, for example Filter together with Count.
//
// Population maps relation paths onto gorm preloads: "author.comments" is
// preloaded as "Author.Comments".
package postgres
