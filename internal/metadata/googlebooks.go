// Copyright (c) 2026 Knihovna. All rights reserved.

// Package metadata resolves ISBNs to bibliographic records through the
// Google Books volumes API, for auto-filling the new-book form.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/pkg/norm"
)

// BookInfo is the subset of volume metadata the catalog can auto-fill.
type BookInfo struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Authors   []string `json:"authors,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Year      int      `json:"year,omitempty"`
	PageCount int      `json:"page_count,omitempty"`
	Language  string   `json:"language,omitempty"`
	ISBN      string   `json:"isbn"`
}

// Client queries the Google Books volumes API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a metadata client. baseURL is configurable so tests can
// point it at a local server.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// volumesResponse mirrors the fields we read from the volumes API payload.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Subtitle      string   `json:"subtitle"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     int      `json:"pageCount"`
			Language      string   `json:"language"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

/*
LookupISBN resolves an ISBN to volume metadata.

Returns apperr.NotFound when the API knows no such volume and
apperr.BadGateway when the upstream call fails.
*/
func (client *Client) LookupISBN(ctx context.Context, isbn string) (*BookInfo, error) {
	cleaned := norm.ISBN(isbn)

	endpoint := fmt.Sprintf("%s/volumes?q=%s", client.baseURL,
		url.QueryEscape("isbn:"+cleaned))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building metadata request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("metadata_upstream_unreachable", slog.String("error", err.Error()))
		return nil, apperr.BadGateway("Metadata provider is unreachable")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		client.logger.Warn("metadata_upstream_error", slog.Int("status", response.StatusCode))
		return nil, apperr.BadGateway("Metadata provider returned an error")
	}

	var payload volumesResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.BadGateway("Metadata provider returned a malformed response")
	}

	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, apperr.NotFound("Volume")
	}

	info := payload.Items[0].VolumeInfo
	return &BookInfo{
		Title:     info.Title,
		Subtitle:  info.Subtitle,
		Authors:   info.Authors,
		Publisher: info.Publisher,
		Year:      parseYear(info.PublishedDate),
		PageCount: info.PageCount,
		Language:  info.Language,
		ISBN:      cleaned,
	}, nil
}

// parseYear extracts the leading year from a publishedDate, which the API
// returns as "2006", "2006-01" or "2006-01-02". Zero when unparsable.
func parseYear(publishedDate string) int {
	if len(publishedDate) < 4 {
		return 0
	}

	year := 0
	for _, r := range publishedDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
