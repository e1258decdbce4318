package httpquery

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

func TestBindPagination(t *testing.T) {
	cfg := Config{DefaultPerPage: 10, MaxPerPage: 50}

	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{name: "defaults", query: "", want: Pagination{Page: 1, PerPage: 10}},
		{name: "explicit", query: "page=3&perPage=25", want: Pagination{Page: 3, PerPage: 25}},
		{name: "limit alias", query: "limit=15", want: Pagination{Page: 1, PerPage: 15}},
		{name: "perPage wins over limit", query: "perPage=5&limit=15", want: Pagination{Page: 1, PerPage: 5}},
		{name: "capped", query: "perPage=500", want: Pagination{Page: 1, PerPage: 50}},
		{name: "invalid values", query: "page=abc&perPage=x", want: Pagination{Page: 1, PerPage: 10}},
		{name: "non positive", query: "page=0&perPage=-4", want: Pagination{Page: 1, PerPage: 10}},
		{name: "all", query: "page=2&all=true", want: Pagination{Page: 2, PerPage: 10, All: true}},
		{name: "all false", query: "all=false", want: Pagination{Page: 1, PerPage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/products?"+tt.query, nil)
			assert.Equal(t, tt.want, BindPagination(r, cfg))
		})
	}
}

func TestPaginationFromQuery(t *testing.T) {
	q := queryparser.Parse(queryparser.Params{
		queryparser.KeyPage:    "2",
		queryparser.KeyPerPage: []string{"30"},
		queryparser.KeyAll:     "1",
	})

	p := PaginationFromQuery(q, DefaultConfig())
	assert.Equal(t, Pagination{Page: 2, PerPage: 30, All: true}, p)
}

func TestPaginationFromQuery_Defaults(t *testing.T) {
	p := PaginationFromQuery(queryparser.Parse(queryparser.Params{}), Config{})
	assert.Equal(t, Pagination{Page: 1, PerPage: DefaultPerPage}, p)
}

func TestPagination_OffsetAndLimit(t *testing.T) {
	p := Pagination{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())

	all := Pagination{Page: 3, PerPage: 20, All: true}
	assert.Equal(t, 0, all.Offset())
	assert.Equal(t, 0, all.Limit())
}

func TestPagination_Meta(t *testing.T) {
	assert.Equal(t, PageMeta{
		Page: 2, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true,
	}, Pagination{Page: 2, PerPage: 20}.Meta(45))

	assert.Equal(t, PageMeta{
		Page: 1, PerPage: 20, Total: 0, TotalPages: 0,
	}, Pagination{Page: 1, PerPage: 20}.Meta(0))

	assert.Equal(t, PageMeta{
		Page: 3, PerPage: 20, Total: 60, TotalPages: 3, HasPrev: true,
	}, Pagination{Page: 3, PerPage: 20}.Meta(60))

	assert.Equal(t, PageMeta{
		Page: 1, PerPage: 7, Total: 7, TotalPages: 1,
	}, Pagination{All: true}.Meta(7))
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{DefaultPerPage: 500, MaxPerPage: 100}.withDefaults()
	assert.Equal(t, 100, cfg.DefaultPerPage)

	cfg = Config{}.withDefaults()
	assert.Equal(t, DefaultConfig(), cfg)
}
