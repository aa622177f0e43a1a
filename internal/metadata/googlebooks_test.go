// Copyright (c) 2026 Knihovna. All rights reserved.

package metadata_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knihovna/api/internal/metadata"
	"github.com/knihovna/api/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestLookupISBN verifies a volume hit is mapped onto BookInfo, including the
year extraction and hyphen-stripped ISBN echo.
*/
func TestLookupISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/volumes", request.URL.Path)
		assert.Equal(t, "isbn:9788025710486", request.URL.Query().Get("q"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "Stříbrný vítr",
					"authors": ["Fráňa Šrámek"],
					"publisher": "Československý spisovatel",
					"publishedDate": "1966-05",
					"pageCount": 288,
					"language": "cs"
				}
			}]
		}`))
	}))
	defer server.Close()

	client := metadata.NewClient(server.URL, discardLogger())

	info, err := client.LookupISBN(context.Background(), "978-80-257-1048-6")
	require.NoError(t, err)

	assert.Equal(t, "Stříbrný vítr", info.Title)
	assert.Equal(t, []string{"Fráňa Šrámek"}, info.Authors)
	assert.Equal(t, 1966, info.Year)
	assert.Equal(t, 288, info.PageCount)
	assert.Equal(t, "9788025710486", info.ISBN)
}

/*
TestLookupISBNNotFound verifies an empty volumes result maps to a 404.
*/
func TestLookupISBNNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	client := metadata.NewClient(server.URL, discardLogger())

	_, err := client.LookupISBN(context.Background(), "9788025710486")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

/*
TestLookupISBNUpstreamError verifies upstream failures surface as 502, not as
internal errors.
*/
func TestLookupISBNUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := metadata.NewClient(server.URL, discardLogger())

	_, err := client.LookupISBN(context.Background(), "9788025710486")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
}
