// Copyright (c) 2026 Knihovna. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation, free-text search and the
// client-cache freshness timestamp are requested via query parameters, and
// how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	//
	// The catalog is a small personal collection; the deliberate default is
	// "return everything" so that clients that never paginate keep working.
	DefaultPageSize = 10000
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed list parameters from a request's query string.
type Params struct {
	Page     int
	PageSize int

	// Search is the raw free-text search term ("" when absent).
	Search string

	// Sorting is the raw JSON-encoded sort specification ("" when absent).
	Sorting string

	// DataFrom is the client-supplied freshness timestamp. Zero when absent
	// or unparsable; an unparsable value degrades to "not supplied" rather
	// than failing the request.
	DataFrom time.Time
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`

	// LatestUpdate is the most recent modification time of the collection,
	// echoed back so clients can supply it as data_from on the next request.
	LatestUpdate *time.Time `json:"latest_update,omitempty"`

	// UpToDate is true when the request short-circuited because the client's
	// data_from timestamp was already current. Data is empty in that case.
	UpToDate bool `json:"up_to_date,omitempty"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and
// page size.
func NewMeta(page, pageSize, total int) Meta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses list parameters from an HTTP request's query string.
//
// # Clamping
//
// Invalid or negative page and page_size values are clamped to [DefaultPage]
// and [DefaultPageSize].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page := parseIntParam(r, "page", DefaultPage)
	pageSize := parseIntParam(r, "page_size", DefaultPageSize)

	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	params := Params{
		Page:     page,
		PageSize: pageSize,
		Search:   query.Get("search"),
		Sorting:  query.Get("sorting"),
	}

	if raw := query.Get("data_from"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			params.DataFrom = ts
		}
	}

	return params
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
