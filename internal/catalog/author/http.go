// Copyright (c) 2026 Knihovna. All rights reserved.

package author

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
	router.Get("/", handler.listAuthors)
	router.Get("/{id}", handler.getAuthor)

	// Members only
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireRole(sec.RoleMember))

		memberRoute.Post("/", handler.createAuthor)
		memberRoute.Put("/{id}", handler.updateAuthor)

		// Admin strict only
		memberRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteAuthor)
	})
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	sort, err := query.ParseSort(params.Sorting)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListAuthors(request.Context(), query.Options{
		Page:         params.Page,
		PageSize:     params.PageSize,
		Search:       params.Search,
		SearchFields: SearchFields(),
		Sort:         sort,
		DataFrom:     params.DataFrom,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Data, result.Meta(params.Page, params.PageSize))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.service.GetAuthor(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateAuthor(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateAuthor(request.Context(), authorID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAuthor(request.Context(), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
