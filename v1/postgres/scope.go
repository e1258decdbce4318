package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/querystd/v1/httpquery"
	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

// Scope applies the filter, sort, selection and population of q to a gorm
// query. Translation failures are added to the returned *gorm.DB, so they
// surface from the terminal method (Find, Count, ...).
//
// Example:
//
//	var products []Product
//	err := db.WithContext(ctx).
//	    Scopes(postgres.Scope(q), postgres.Paginate(page)).
//	    Find(&products).Error
func Scope(q *queryparser.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return Population(q)(Selection(q)(Sort(q)(Filter(q)(db))))
	}
}

// Filter applies only the filter of q.
func Filter(q *queryparser.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		exprs, err := FilterExpressions(q.Filter())
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		if len(exprs) == 0 {
			return db
		}
		return db.Clauses(clause.Where{Exprs: exprs})
	}
}

// Sort applies the sort document of q in its order.
func Sort(q *queryparser.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sortDoc := q.Sort()
		if len(sortDoc) == 0 {
			return db
		}

		columns := make([]clause.OrderByColumn, 0, len(sortDoc))
		for _, e := range sortDoc {
			col, err := column(e.Key)
			if err != nil {
				_ = db.AddError(err)
				return db
			}
			columns = append(columns, clause.OrderByColumn{Column: col, Desc: isDescending(e.Value)})
		}
		return db.Clauses(clause.OrderBy{Columns: columns})
	}
}

// Selection restricts the selected columns. Fields written as -field are
// omitted instead; they only take effect when nothing is selected
// explicitly and the query has a model.
func Selection(q *queryparser.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		var selected []clause.Column
		var omitted []string

		for _, e := range q.Projection() {
			col, err := column(e.Key)
			if err != nil {
				_ = db.AddError(err)
				return db
			}
			if e.Value == 0 {
				omitted = append(omitted, e.Key)
				continue
			}
			selected = append(selected, col)
		}

		if len(selected) > 0 {
			return db.Clauses(clause.Select{Columns: selected})
		}
		if len(omitted) > 0 {
			return db.Omit(omitted...)
		}
		return db
	}
}

// Population preloads the requested relations. Relation names follow gorm's
// field names, so "author" is preloaded as "Author".
func Population(q *queryparser.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, rel := range q.Population() {
			if !columnPattern.MatchString(rel) {
				_ = db.AddError(fmt.Errorf("%w: relation %q", ErrInvalidColumn, rel))
				return db
			}
			db = db.Preload(relationName(rel))
		}
		return db
	}
}

// Search matches the search term of q case-insensitively against columns,
// any column matching. Without a term the query is unchanged.
func Search(q *queryparser.Query, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term, ok := q.Search()
		if !ok || len(columns) == 0 {
			return db
		}

		pattern := "%" + escapeLike(term) + "%"
		exprs := make([]clause.Expression, 0, len(columns))
		for _, name := range columns {
			quoted, err := quoteColumn(name)
			if err != nil {
				_ = db.AddError(err)
				return db
			}
			exprs = append(exprs, clause.Expr{SQL: quoted + " ILIKE ?", Vars: []interface{}{pattern}})
		}
		return db.Clauses(clause.Where{Exprs: []clause.Expression{clause.Or(exprs...)}})
	}
}

// Paginate applies offset and limit. A pagination with All set is a no-op.
func Paginate(p httpquery.Pagination) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.All || p.Limit() <= 0 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Limit())
	}
}

func isDescending(v any) bool {
	switch t := v.(type) {
	case int:
		return t < 0
	case int32:
		return t < 0
	case int64:
		return t < 0
	case float64:
		return t < 0
	case string:
		return !strings.EqualFold(t, "asc")
	default:
		return false
	}
}

// relationName converts author.comments into Author.Comments.
func relationName(rel string) string {
	parts := strings.Split(rel, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
