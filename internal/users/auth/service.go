// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/dberr"
	"github.com/taibuivan/yonota/internal/platform/notify"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/platform/validate"
	"github.com/taibuivan/yonota/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - staff: Whether the account carries staff/superuser privileges.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, staff bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token issuance use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation or
// the token exchange must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	tokenProvider  TokenProvider
	dispatcher     notify.Dispatcher
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	tokenProv TokenProvider,
	dispatcher notify.Dispatcher,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the identity pair submitted at registration.
type SignupInput struct {
	Username string
	Email    string
}

// SignupResult echoes the registered identity pair back to the caller.
type SignupResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers a new identity or re-issues a code for an existing one.

Description: The operation is idempotent for a matching username/email pair:
repeating it simply emails a fresh confirmation code, which replaces the
previous one. A pair that half-matches an existing account (same username,
different email, or the reverse) is rejected.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupResult: The registered pair
  - err: Validation failures or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupResult, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)

	switch {
	case err == nil:
		// Known username: only the original email may request a resend.
		if user.Email != input.Email {
			return nil, validate.RequiredError(FieldUsername, "Username is already taken")
		}

	case apperr.IsNotFound(err):
		// New username: the email must be unclaimed too.
		if _, emailErr := service.userRepository.FindByEmail(context, input.Email); emailErr == nil {
			return nil, validate.RequiredError(FieldEmail, "Email is already registered")
		} else if !apperr.IsNotFound(emailErr) {
			return nil, emailErr
		}

		user = &User{
			ID:       uuidv7.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
			IsActive: false,
		}

		if createErr := service.userRepository.Create(context, user); createErr != nil {
			// Two signups can race past the lookups above; the unique
			// constraints decide, and the loser gets the same message.
			switch dberr.ConstraintName(createErr) {
			case "account_username_key":
				return nil, validate.RequiredError(FieldUsername, "Username is already taken")
			case "account_email_key":
				return nil, validate.RequiredError(FieldEmail, "Email is already registered")
			}
			return nil, fmt.Errorf("auth_service_signup_create_failed: %w", createErr)
		}

		service.logger.Info("user_registered", slog.String("username", user.Username))

	default:
		return nil, err
	}

	code := newConfirmationCode()
	if err := service.codeRepository.Set(context, user.Username, code, ConfirmationCodeTTL); err != nil {
		return nil, fmt.Errorf("auth_service_store_code_failed: %w", err)
	}

	// Mail dispatch is best-effort: a broker outage must not fail the signup.
	// The user can always request a resend.
	subject := "Your Yonota confirmation code"
	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n", user.Username, code)
	if err := service.dispatcher.Send(context, user.Email, subject, body); err != nil {
		service.logger.Error("confirmation_mail_dispatch_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
	}

	return &SignupResult{Username: user.Username, Email: user.Email}, nil
}

// # Token Exchange

// TokenResult carries the issued JWT access token.
type TokenResult struct {
	Token string `json:"token"`
}

/*
IssueToken exchanges a username and confirmation code for a JWT.

Description: Verifies the code against the stored copy, activates the account
on first use, and consumes the code so it cannot be replayed.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - *TokenResult: Signed access token
  - err: apperr.NotFound for an unknown username, validation err for a
    wrong or expired code
*/
func (service *Service) IssueToken(context context.Context, username, code string) (*TokenResult, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	stored, err := service.codeRepository.Get(context, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, validate.RequiredError(FieldConfirmationCode, "Confirmation code is invalid or expired")
		}
		return nil, err
	}

	if stored != code {
		return nil, validate.RequiredError(FieldConfirmationCode, "Confirmation code is invalid or expired")
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID,
		user.Username,
		string(user.Role),
		user.IsStaff || user.IsSuperuser,
		AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if !user.IsActive {
		if err := service.userRepository.MarkActive(context, user.ID); err != nil {
			service.logger.Error("mark_active_failed",
				slog.String("username", username),
				slog.Any("error", err),
			)
		}
	}

	// Single-use: the code is consumed by a successful exchange.
	_ = service.codeRepository.Delete(context, username)

	service.logger.Info("token_issued", slog.String("username", username))

	return &TokenResult{Token: token}, nil
}

// newConfirmationCode generates a short random code (the first segment of a
// random UUID, 8 hex characters). Short enough to retype from a mail client.
func newConfirmationCode() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
