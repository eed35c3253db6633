package helpers

import (
	"net/http"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination holds the page window parsed from query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// PaginationMeta describes the page window of a list response.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// ParsePagination reads page and page_size from the query string, falling back
// to defaults and clamping page_size to maxPageSize.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Page: defaultPage, PageSize: defaultPageSize}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PageSize = min(n, maxPageSize)
		}
	}
	return p
}

// Window slices items to the page described by p and returns the slice along
// with the pagination meta for the full list. Out-of-range pages yield an
// empty slice.
func Window[T any](items []T, p Pagination) ([]T, PaginationMeta) {
	meta := PaginationMeta{Page: p.Page, PageSize: p.PageSize, Total: len(items)}
	start := (p.Page - 1) * p.PageSize
	if start >= len(items) {
		return []T{}, meta
	}
	end := min(start+p.PageSize, len(items))
	return items[start:end], meta
}
