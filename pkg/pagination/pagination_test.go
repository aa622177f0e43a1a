// Copyright (c) 2026 Knihovna. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/knihovna/api/pkg/pagination"
)

/*
TestFromRequest tests query-string parsing and clamping of list parameters.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
		wantSearch   string
	}{
		{"defaults", "/books", 1, pagination.DefaultPageSize, ""},
		{"explicit", "/books?page=3&page_size=25&search=svejk", 3, 25, "svejk"},
		{"negative_page_clamped", "/books?page=-2&page_size=10", 1, 10, ""},
		{"garbage_page_size_clamped", "/books?page_size=abc", 1, pagination.DefaultPageSize, ""},
		{"zero_page_size_clamped", "/books?page_size=0", 1, pagination.DefaultPageSize, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
			assert.Equal(t, tt.wantSearch, p.Search)
		})
	}
}

/*
TestFromRequest_DataFrom tests RFC 3339 parsing of the freshness timestamp.
Unparsable values degrade to the zero time instead of failing.
*/
func TestFromRequest_DataFrom(t *testing.T) {
	r := httptest.NewRequest("GET", "/books?data_from=2026-08-01T10%3A00%3A00Z", nil)
	p := pagination.FromRequest(r)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), p.DataFrom)

	r = httptest.NewRequest("GET", "/books?data_from=not-a-date", nil)
	p = pagination.FromRequest(r)
	assert.True(t, p.DataFrom.IsZero())
}

/*
TestNewMeta checks total-page arithmetic.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 41)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 41, meta.Total)
	assert.Equal(t, 5, meta.TotalPages)

	empty := pagination.NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
