// Copyright (c) 2026 Knihovna. All rights reserved.

package quote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/middleware"
	requestutil "github.com/knihovna/api/internal/platform/request"
	"github.com/knihovna/api/internal/platform/respond"
	"github.com/knihovna/api/internal/platform/sec"
	"github.com/knihovna/api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listQuotes)
	router.Get("/random", handler.randomQuote)
	router.Get("/{id}", handler.getQuote)

	// Members only
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireRole(sec.RoleMember))

		memberRoute.Post("/", handler.createQuote)
		memberRoute.Put("/{id}", handler.updateQuote)

		// Admin strict only
		memberRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteQuote)
	})
}

func (handler *Handler) listQuotes(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	sort, err := query.ParseSort(params.Sorting)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Quotes carry no search index, so the search term is ignored.
	result, err := handler.service.ListQuotes(request.Context(), query.Options{
		Page:     params.Page,
		PageSize: params.PageSize,
		Sort:     sort,
		DataFrom: params.DataFrom,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Data, result.Meta(params.Page, params.PageSize))
}

func (handler *Handler) randomQuote(writer http.ResponseWriter, request *http.Request) {
	q, err := handler.service.RandomQuote(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, q)
}

func (handler *Handler) getQuote(writer http.ResponseWriter, request *http.Request) {
	quoteID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := handler.service.GetQuote(request.Context(), quoteID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, q)
}

func (handler *Handler) createQuote(writer http.ResponseWriter, request *http.Request) {
	var input Quote
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateQuote(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateQuote(writer http.ResponseWriter, request *http.Request) {
	quoteID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Quote
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateQuote(request.Context(), quoteID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteQuote(writer http.ResponseWriter, request *http.Request) {
	quoteID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteQuote(request.Context(), quoteID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
