// Copyright (c) 2026 Knihovna. All rights reserved.

package lp

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
	router.Get("/", handler.listLPs)
	router.Get("/{id}", handler.getLP)

	// Members only
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireRole(sec.RoleMember))

		memberRoute.Post("/", handler.createLP)
		memberRoute.Put("/{id}", handler.updateLP)

		// Admin strict only
		memberRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteLP)
	})
}

func (handler *Handler) listLPs(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	sort, err := query.ParseSort(params.Sorting)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListLPs(request.Context(), query.Options{
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

func (handler *Handler) getLP(writer http.ResponseWriter, request *http.Request) {
	lpID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetLP(request.Context(), lpID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) createLP(writer http.ResponseWriter, request *http.Request) {
	var input LP
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateLP(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateLP(writer http.ResponseWriter, request *http.Request) {
	lpID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LP
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateLP(request.Context(), lpID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteLP(writer http.ResponseWriter, request *http.Request) {
	lpID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLP(request.Context(), lpID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
