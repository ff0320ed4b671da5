package shared

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Pagination defaults and bounds for list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// PageParams are the decoded pagination query parameters of a list request.
type PageParams struct {
	Page     int
	PageSize int
}

// Offset converts the 1-based page number into a row offset.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageMeta is the pagination envelope returned alongside list data. Simple
// pagination: no total count, only whether a next page exists.
type PageMeta struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ParsePageParams reads page and page_size query parameters, applying
// defaults and clamping out-of-range values rather than erroring: a bad
// pagination parameter is not worth failing a read for.
func ParsePageParams(r *http.Request) PageParams {
	params := PageParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			params.Page = page
		}
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size >= 1 {
			if size > MaxPageSize {
				size = MaxPageSize
			}
			params.PageSize = size
		}
	}

	return params
}
