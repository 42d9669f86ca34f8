// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for user management.

# Security

The /me endpoints require an authenticated session. Everything else in this
router is an administrative surface gated by the admin role.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yonota/internal/platform/middleware"
	requestutil "github.com/taibuivan/yonota/internal/platform/request"
	"github.com/taibuivan/yonota/internal/platform/respond"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/platform/validate"
	"github.com/taibuivan/yonota/internal/users/auth"
	"github.com/taibuivan/yonota/pkg/pagination"
)

// Handler implements the HTTP layer for user directory management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the user directory endpoints.
//
// The /me routes are registered before /{username}, so "me" is never
// interpreted as a username.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self service
	router.Group(func(selfRoute chi.Router) {
		selfRoute.Use(middleware.RequireAuth)
		selfRoute.Get("/me", handler.getMe)
		selfRoute.Patch("/me", handler.updateMe)
	})

	// Directory administration
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))
		adminRoute.Get("/", handler.listUsers)
		adminRoute.Post("/", handler.createUser)
		adminRoute.Get("/{username}", handler.getUser)
		adminRoute.Patch("/{username}", handler.updateUser)
		adminRoute.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Self Service Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the profile of the authenticated user.

Response:
  - 200: User: The caller's own profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetSelf(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the JSON payload for self-service profile updates.
// There is no role field here; role changes go through the admin endpoints.
type updateMeRequest struct {
	Email *string `json:"email"`
	Bio   *string `json:"bio"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's own profile.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLen)
	}
	if input.Bio != nil {
		v.MaxLen(auth.FieldBio, *input.Bio, auth.BioMaxLen)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateSelf(request.Context(), claims.UserID, UpdateSelfInput{
		Email: input.Email,
		Bio:   input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Directory Administration Endpoints

/*
GET /api/v1/users.

Description: Lists accounts with pagination and an optional username search.

Request:
  - search: string (Query parameter, optional)

Response:
  - 200: []User: Page of accounts with pagination metadata
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.ListUsers(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createUserRequest defines the JSON payload for administrative account creation.
type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
}

/*
POST /api/v1/users.

Description: Provisions an account with an explicit role.

Request:
  - body: createUserRequest (Username, Email, Role, Bio)

Response:
  - 201: User: The created account
  - 400: ErrInvalidJSON/Validation: Invalid input or identity conflict
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.UsernameMaxLen).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLen).
		MaxLen(auth.FieldBio, input.Bio, auth.BioMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), CreateInput{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
		Bio:      input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Description: Retrieves a single account by username.

Response:
  - 200: User: The account
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the JSON payload for administrative updates.
type updateUserRequest struct {
	Email *string `json:"email"`
	Role  *string `json:"role"`
	Bio   *string `json:"bio"`
}

/*
PATCH /api/v1/users/{username}.

Description: Applies partial updates to any account, including role changes.

Request:
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLen)
	}
	if input.Bio != nil {
		v.MaxLen(auth.FieldBio, *input.Bio, auth.BioMaxLen)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateUser(request.Context(), username, UpdateInput{
		Email: input.Email,
		Role:  input.Role,
		Bio:   input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Description: Permanently removes an account and its authored content.

Response:
  - 204: No Content: Account deleted
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
