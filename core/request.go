package core

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/caasmo/tablebook/db"
)

// pathID parses the named path parameter as a positive integer id.
func (a *App) pathID(r *http.Request, name string) (int64, error) {
	raw := a.Router().Param(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// listFilter builds the shared pagination and search parameters from the
// query string: ?search=&page=&limit=. limit accepts "all" to disable
// pagination; absent or invalid values fall back to the default page size.
func (a *App) listFilter(r *http.Request) db.ListFilter {
	q := r.URL.Query()

	f := db.ListFilter{
		Search: q.Get("search"),
		Limit:  a.Config().List.DefaultPageSize,
	}

	switch raw := q.Get("limit"); raw {
	case "", "0":
	case "all":
		f.All = true
	default:
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			f.Limit = limit
		}
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		f.Offset = (page - 1) * f.Limit
	}

	return f
}

// queryID parses an optional integer query parameter, returning 0 when
// absent or malformed.
func queryID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if id < 0 {
		return 0
	}
	return id
}
