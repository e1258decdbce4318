// Package httpquery connects the query parser to net/http.
//
// It decodes query strings with bracket syntax into parser parameters,
// runs the parser in a middleware, and binds pagination parameters.
//
// # Bracket Syntax
//
//	params, err := httpquery.ParseRawQuery("sort[name]=desc&ids[]=a&ids[]=b&status=active")
//	// params["sort"]   == bson.D{{"name", "desc"}}
//	// params["ids"]    == bson.A{"a", "b"}
//	// params["status"] == "active"
//
// # Middleware
//
//	parser := queryparser.NewParser(queryparser.DefaultConfig(), log)
//	mux.Handle("/products", httpquery.Middleware(parser, tr, log)(http.HandlerFunc(
//	    func(w http.ResponseWriter, r *http.Request) {
//	        q, _ := httpquery.FromContext(r.Context())
//	        page := httpquery.PaginationFromQuery(q, httpquery.DefaultConfig())
//	        rows, total := store.Find(r.Context(), q.Filter(), q.Sort(), page.Offset(), page.Limit())
//	        writeJSON(w, rows, page.Meta(total))
//	    })))
//
// Parsing runs in a span named "queryparser.Parse" when a tracer is given.
// The middleware never rejects a request.
//
// # Pagination
//
// page is 1-based; perPage (or limit) defaults to Config.DefaultPerPage and
// is capped at Config.MaxPerPage. all=true bypasses pagination.
package httpquery
