// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/yonota/internal/platform/middleware"
	requestutil "github.com/taibuivan/yonota/internal/platform/request"
	"github.com/taibuivan/yonota/internal/platform/respond"
	"github.com/taibuivan/yonota/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the review endpoints. The router is nested under
// /titles/{titleID}/reviews, so every handler resolves titleID first.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)

	// Any authenticated user; per-object ownership is checked in the service
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createReview)
		authRoute.Patch("/{reviewID}", handler.updateReview)
		authRoute.Delete("/{reviewID}", handler.deleteReview)
	})
}

type reviewPayload struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type reviewPatchPayload struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), titleID, claims, CreateInput{
		Body:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewPatchPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), titleID, reviewID, claims, UpdateInput{
		Body:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), titleID, reviewID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// reviewParams extracts both path IDs shared by the item-level handlers.
func reviewParams(request *http.Request) (titleID, reviewID int, err error) {
	titleID, err = requestutil.IntParam(request, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = requestutil.IntParam(request, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
