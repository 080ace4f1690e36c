package pagination

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes", nil)
	params := FromRequest(r)
	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Errorf("expected page 1 limit %d, got %+v", DefaultLimit, params)
	}

	r = httptest.NewRequest("GET", "/api/recipes?page=0&limit=-3", nil)
	params = FromRequest(r)
	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Errorf("expected unusable values to fall back, got %+v", params)
	}

	r = httptest.NewRequest("GET", "/api/recipes?page=3&limit=10", nil)
	params = FromRequest(r)
	if params.Page != 3 || params.Limit != 10 {
		t.Errorf("expected page 3 limit 10, got %+v", params)
	}
}

func TestFromRequestCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes?limit=5000", nil)
	if params := FromRequest(r); params.Limit != maxLimit {
		t.Errorf("expected limit capped at %d, got %d", maxLimit, params.Limit)
	}
}

func TestPaginateFirstPage(t *testing.T) {
	u, _ := url.Parse("/api/recipes?limit=6")
	page := Paginate(items(13), Params{Page: 1, Limit: 6}, u)

	if page.Count != 13 {
		t.Errorf("expected count 13, got %d", page.Count)
	}
	if len(page.Results) != 6 {
		t.Errorf("expected 6 results, got %d", len(page.Results))
	}
	if page.Previous != nil {
		t.Errorf("expected no previous link, got %q", *page.Previous)
	}
	if page.Next == nil {
		t.Fatal("expected next link")
	}
	if !strings.Contains(*page.Next, "page=2") {
		t.Errorf("expected next link to point at page 2, got %q", *page.Next)
	}
}

func TestPaginateLastPage(t *testing.T) {
	u, _ := url.Parse("/api/recipes?page=3&limit=6")
	page := Paginate(items(13), Params{Page: 3, Limit: 6}, u)

	if len(page.Results) != 1 {
		t.Errorf("expected 1 result on the last page, got %d", len(page.Results))
	}
	if page.Next != nil {
		t.Errorf("expected no next link, got %q", *page.Next)
	}
	if page.Previous == nil {
		t.Fatal("expected previous link")
	}
	if !strings.Contains(*page.Previous, "page=2") {
		t.Errorf("expected previous link to point at page 2, got %q", *page.Previous)
	}
}

func TestPaginateBeyondEnd(t *testing.T) {
	page := Paginate(items(4), Params{Page: 9, Limit: 6}, nil)
	if len(page.Results) != 0 {
		t.Errorf("expected empty results beyond the end, got %d", len(page.Results))
	}
	if page.Count != 4 {
		t.Errorf("expected count 4, got %d", page.Count)
	}
}
