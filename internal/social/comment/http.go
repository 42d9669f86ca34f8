// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// RegisterRoutes mounts the comment endpoints. The router is nested under
// /titles/{titleID}/reviews/{reviewID}/comments.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listComments)
	router.Get("/{commentID}", handler.getComment)

	// Any authenticated user; per-object ownership is checked in the service
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createComment)
		authRoute.Patch("/{commentID}", handler.updateComment)
		authRoute.Delete("/{commentID}", handler.deleteComment)
	})
}

type commentPayload struct {
	Text string `json:"text"`
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), titleID, reviewID, claims, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, claims, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// parentParams extracts the nesting path IDs shared by all handlers.
func parentParams(request *http.Request) (titleID, reviewID int, err error) {
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

func commentParams(request *http.Request) (titleID, reviewID, commentID int, err error) {
	titleID, reviewID, err = parentParams(request)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = requestutil.IntParam(request, "commentID")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
