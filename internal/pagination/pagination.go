// Package pagination provides page/limit pagination over result sets.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the page size applied when the client sends none.
	DefaultLimit = 6
	maxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
}

// FromRequest reads the "page" and "limit" query parameters, falling back
// to page 1 and DefaultLimit for absent or unusable values.
func FromRequest(r *http.Request) Params {
	params := Params{Page: 1, Limit: DefaultLimit}

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		params.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		params.Limit = min(v, maxLimit)
	}
	return params
}

// Page is the paginated response envelope: total count, next/previous page
// links, and the bounded result slice.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Paginate slices items down to the requested page. requestURL, when
// given, is used to build the next and previous links.
func Paginate[T any](items []T, params Params, requestURL *url.URL) Page[T] {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	start := (params.Page - 1) * params.Limit
	end := min(start+params.Limit, len(items))
	if start > len(items) {
		start = len(items)
	}

	page := Page[T]{
		Count:   len(items),
		Results: items[start:end],
	}
	if end < len(items) {
		page.Next = pageLink(requestURL, params.Page+1)
	}
	if params.Page > 1 {
		page.Previous = pageLink(requestURL, params.Page-1)
	}
	return page
}

func pageLink(requestURL *url.URL, page int) *string {
	if requestURL == nil {
		return nil
	}
	u := *requestURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
