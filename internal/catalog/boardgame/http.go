// Copyright (c) 2026 Knihovna. All rights reserved.

package boardgame

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/apperr"
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
	router.Get("/", handler.listBoardGames)
	router.Get("/{id}", handler.getBoardGame)

	// Members only
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireRole(sec.RoleMember))

		memberRoute.Post("/", handler.createBoardGame)
		memberRoute.Put("/{id}", handler.updateBoardGame)

		// Admin strict only
		memberRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteBoardGame)
	})
}

func (handler *Handler) listBoardGames(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	sort, err := query.ParseSort(params.Sorting)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := parentFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListBoardGames(request.Context(), query.Options{
		Page:         params.Page,
		PageSize:     params.PageSize,
		Search:       params.Search,
		SearchFields: SearchFields(),
		Sort:         sort,
		DataFrom:     params.DataFrom,
	}, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Data, result.Meta(params.Page, params.PageSize))
}

func (handler *Handler) getBoardGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetBoardGame(request.Context(), gameID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

func (handler *Handler) createBoardGame(writer http.ResponseWriter, request *http.Request) {
	var input BoardGame
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBoardGame(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBoardGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BoardGame
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBoardGame(request.Context(), gameID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBoardGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBoardGame(request.Context(), gameID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// parentFilter parses the optional ?parent= query parameter: "none" lists
// base games only, a document ID lists that game's expansions.
func parentFilter(request *http.Request) (Filter, error) {
	raw := request.URL.Query().Get("parent")
	if raw == "" {
		return Filter{}, nil
	}
	if raw == "none" {
		return Filter{Parent: &primitive.NilObjectID}, nil
	}

	parentID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return Filter{}, apperr.ValidationError("Invalid parent identifier")
	}
	return Filter{Parent: &parentID}, nil
}
