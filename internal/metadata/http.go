// Copyright (c) 2026 Knihovna. All rights reserved.

package metadata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/knihovna/api/internal/platform/request"
	"github.com/knihovna/api/internal/platform/respond"
	"github.com/knihovna/api/internal/platform/validate"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/isbn/{isbn}", handler.lookupISBN)
}

/*
LookupISBN resolves an ISBN to bibliographic metadata for form auto-fill.

GET /api/v1/metadata/isbn/{isbn}

Response:
  - 200: BookInfo
  - 404: No volume known for this ISBN
  - 502: Metadata provider failure
*/
func (handler *Handler) lookupISBN(writer http.ResponseWriter, request *http.Request) {
	isbn := requestutil.Param(request, "isbn")

	validator := &validate.Validator{}
	validator.Required("isbn", isbn).ISBN("isbn", isbn)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	info, err := handler.client.LookupISBN(request.Context(), isbn)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, info)
}
