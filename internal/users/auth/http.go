// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yonota/internal/platform/request"
	"github.com/taibuivan/yonota/internal/platform/respond"
	"github.com/taibuivan/yonota/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the account entry points: signup with an emailed
// confirmation code, and the exchange of that code for an access token.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Registers a username and emails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints. Both are unauthenticated: the confirmation code
	// delivered by mail is the proof of identity.
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup registers a new account or re-requests a code for an existing one.

POST /api/v1/auth/signup

Description: Validates input, creates the account if the username is unknown,
and emails a fresh confirmation code. Re-submitting the same username and
email pair is idempotent and sends a new code.

Request:
  - Body: signupRequest (Username, Email)

Response:
  - 200: SignupResult: Echo of the registered username and email
  - 400: ErrInvalidJSON: Bad input, or the username/email is taken by someone else
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Token exchanges a confirmation code for an access token.

POST /api/v1/auth/token

Description: Verifies the emailed confirmation code for the username and
returns a signed JWT. A successful exchange consumes the code.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: TokenResult: Signed access token
  - 400: ErrInvalidJSON: Missing fields or a wrong/expired code
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.IssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
