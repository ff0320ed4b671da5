package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{
			name:     "defaults",
			url:      "/tasks",
			wantPage: DefaultPage,
			wantSize: DefaultPageSize,
		},
		{
			name:     "explicit values",
			url:      "/tasks?page=3&page_size=25",
			wantPage: 3,
			wantSize: 25,
		},
		{
			name:     "page size clamped to maximum",
			url:      "/tasks?page_size=5000",
			wantPage: DefaultPage,
			wantSize: MaxPageSize,
		},
		{
			name:     "non-numeric values fall back to defaults",
			url:      "/tasks?page=abc&page_size=xyz",
			wantPage: DefaultPage,
			wantSize: DefaultPageSize,
		},
		{
			name:     "zero and negative values fall back to defaults",
			url:      "/tasks?page=0&page_size=-5",
			wantPage: DefaultPage,
			wantSize: DefaultPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := ParsePageParams(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.PageSize)
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, PageParams{Page: 1, PageSize: 15}.Offset())
	assert.Equal(t, 30, PageParams{Page: 3, PageSize: 15}.Offset())
}
