// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/yonota/internal/platform/middleware"
	requestutil "github.com/taibuivan/yonota/internal/platform/request"
	"github.com/taibuivan/yonota/internal/platform/respond"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/pkg/convert"
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
	router.Get("/", handler.listTitles)
	router.Get("/{titleID}", handler.getTitle)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createTitle)
		adminRoute.Patch("/{titleID}", handler.updateTitle)
		adminRoute.Delete("/{titleID}", handler.deleteTitle)
	})
}

// titlePayload is the wire format for title writes. Category and genres are
// referenced by slug.
type titlePayload struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

// titlePatchPayload mirrors titlePayload with every field optional.
type titlePatchPayload struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		Name:         queryValues.Get("name"),
		Year:         convert.ToInt(queryValues.Get("year")),
		CategorySlug: queryValues.Get("category"),
		GenreSlug:    queryValues.Get("genre"),
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitle(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input titlePayload

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input titlePatchPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.UpdateTitle(request.Context(), titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
