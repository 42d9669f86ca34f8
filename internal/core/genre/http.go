// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/yonota/internal/platform/middleware"
	requestutil "github.com/taibuivan/yonota/internal/platform/request"
	"github.com/taibuivan/yonota/internal/platform/respond"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listGenres)
	router.Get("/{slug}", handler.getGenre)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createGenre)
		adminRoute.Delete("/{slug}", handler.deleteGenre)
	})
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.service.ListGenres(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	genre, err := handler.service.GetGenreBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
