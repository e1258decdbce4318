package httpquery

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

// Pagination is the page window requested by a client.
type Pagination struct {
	// Page is 1-based.
	Page    int
	PerPage int

	// All asks the data layer to skip pagination.
	All bool
}

// PageMeta describes a page of results for the response envelope.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// BindPagination reads page, perPage (or its alias limit) and all from the
// request query. Invalid or missing values fall back to page 1 and the
// configured default size; perPage is capped at cfg.MaxPerPage.
func BindPagination(r *http.Request, cfg Config) Pagination {
	values := r.URL.Query()
	p := bindPagination(values, cfg)
	p.All = queryparser.Truthy(values[queryparser.KeyAll])
	return p
}

// PaginationFromQuery derives the pagination of an already parsed query
// from its hints.
func PaginationFromQuery(q *queryparser.Query, cfg Config) Pagination {
	values := url.Values{}
	for _, key := range []string{queryparser.KeyPage, queryparser.KeyPerPage, queryparser.KeyLimit} {
		v, ok := q.Hint(key)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			values.Set(key, t)
		case []string:
			if len(t) > 0 {
				values.Set(key, t[0])
			}
		default:
			values.Set(key, fmt.Sprint(t))
		}
	}

	p := bindPagination(values, cfg)
	p.All = q.GetAll()
	return p
}

func bindPagination(values url.Values, cfg Config) Pagination {
	cfg = cfg.withDefaults()

	page := 1
	if !bindInt(values, queryparser.KeyPage, &page) || page < 1 {
		page = 1
	}

	perPage := cfg.DefaultPerPage
	if values.Has(queryparser.KeyPerPage) {
		if !bindInt(values, queryparser.KeyPerPage, &perPage) {
			perPage = cfg.DefaultPerPage
		}
	} else if values.Has(queryparser.KeyLimit) {
		if !bindInt(values, queryparser.KeyLimit, &perPage) {
			perPage = cfg.DefaultPerPage
		}
	}
	if perPage < 1 {
		perPage = cfg.DefaultPerPage
	}
	if perPage > cfg.MaxPerPage {
		perPage = cfg.MaxPerPage
	}

	return Pagination{Page: page, PerPage: perPage}
}

// bindInt binds an optional form style integer. It reports false when the
// value is present but not an integer.
func bindInt(values url.Values, name string, dst *int) bool {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, values, &v); err != nil {
		return false
	}
	if v != nil {
		*dst = *v
	}
	return true
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	if p.All || p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Limit returns the page size, or 0 when pagination is bypassed.
func (p Pagination) Limit() int {
	if p.All {
		return 0
	}
	return p.PerPage
}

// Meta builds the response metadata for total matching rows.
func (p Pagination) Meta(total int64) PageMeta {
	if total < 0 {
		total = 0
	}
	if p.All {
		return PageMeta{Page: 1, PerPage: int(total), Total: total, TotalPages: 1}
	}

	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return PageMeta{
		Page:       p.Page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
