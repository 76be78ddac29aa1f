package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rental-movies/internal/middleware"
	"rental-movies/internal/paging"
	"rental-movies/internal/query"
	"rental-movies/internal/search"

	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

// reserved query parameters that are not filters
var reservedParams = map[string]bool{"hits": true, "page": true, "orderby": true, "order": true}

// listing is a page of search results with its navigation.
type listing[T any] struct {
	*search.PageResult[T]
	Navigation  paging.Nav    `json:"navigation"`
	HitsPerPage []paging.Link `json:"hits_per_page"`
}

// Paging holds the page size settings of listings.
type Paging struct {
	DefaultHits int
	HitsOptions []int
}

// searchParams reads the search parameters from the query string. hits
// defaults to the configured page size and page to the first page.
func (p Paging) searchParams(r *http.Request) (query.Params, *middleware.AppError) {
	q := r.URL.Query()
	params := query.Params{
		Filters: map[string]string{},
		Hits:    p.DefaultHits,
		Page:    1,
		OrderBy: q.Get("orderby"),
		Order:   q.Get("order"),
	}
	for key, values := range q {
		if !reservedParams[key] && len(values) > 0 {
			params.Filters[key] = values[0]
		}
	}
	var appErr *middleware.AppError
	if params.Hits, appErr = intParam(q, "hits", params.Hits); appErr != nil {
		return params, appErr
	}
	if params.Page, appErr = intParam(q, "page", params.Page); appErr != nil {
		return params, appErr
	}
	return params, nil
}

func intParam(q url.Values, key string, fallback int) (int, *middleware.AppError) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &middleware.AppError{Error: err, Message: key + " must be a number", Field: key, Code: http.StatusBadRequest}
	}
	return n, nil
}

// newListing adds the navigation links to a search result.
func newListing[T any](p Paging, r *http.Request, res *search.PageResult[T]) listing[T] {
	base := r.URL.Query()
	base.Del("page")
	base.Del("hits")
	return listing[T]{
		PageResult:  res,
		Navigation:  paging.Navigation(res.PageSize, res.CurrentPage, res.MaxPage, 1, base),
		HitsPerPage: paging.HitsPerPage(p.HitsOptions, res.PageSize, base),
	}
}

// pathID reads a numeric URL parameter.
func pathID(r *http.Request, name string) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &middleware.AppError{
			Error:   fmt.Errorf("invalid %s %q", name, chi.URLParam(r, name)),
			Message: "Invalid " + name,
			Field:   name,
			Code:    http.StatusBadRequest,
		}
	}
	return id, nil
}

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *middleware.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &middleware.AppError{Error: err, Message: "Request body too large", Code: http.StatusRequestEntityTooLarge}
		}
		return &middleware.AppError{Error: err, Message: "Malformed request body", Code: http.StatusBadRequest}
	}
	return nil
}
