// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yonota/internal/platform/dberr"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/platform/validate"
	"github.com/taibuivan/yonota/internal/users/auth"
	"github.com/taibuivan/yonota/pkg/pointer"
	"github.com/taibuivan/yonota/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the user directory and self-service profile use cases.
//
// Role assignment only happens here on the administrative paths. The
// self-service paths never touch the role column, so a user cannot promote
// themselves through /me.
type Service struct {
	accountRepository Repository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Directory Administration

/*
ListUsers retrieves a page of accounts for the administrative directory.

Parameters:
  - context: context.Context
  - search: string (Username substring filter, empty for all)
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching accounts
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	users, total, err := service.accountRepository.List(context, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

/*
GetUser retrieves a single account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: The account
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// CreateInput defines the fields an administrator provides for a new account.
type CreateInput struct {
	Username string
	Email    string
	Role     string
	Bio      string
}

/*
CreateUser provisions an account on behalf of an administrator.

Description: The account is created active, so the user only needs the signup
flow to obtain a confirmation code and token. An empty role defaults to the
regular user role.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: The created account
  - error: Validation failures or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*auth.User, error) {
	role := sec.UserRole(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}

	validator := &validate.Validator{}
	validator.OneOf(auth.FieldRole, string(role),
		string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:       uuidv7.New(),
		Username: input.Username,
		Email:    input.Email,
		Bio:      input.Bio,
		Role:     role,
		IsActive: true,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		if translated := translateConstraint(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.Info("user_created_by_admin",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// UpdateInput defines the fields an administrator may change on any account.
type UpdateInput struct {
	Email *string
	Role  *string
	Bio   *string
}

/*
UpdateUser applies a partial set of changes to an account by username.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: apperr.NotFound, validation failures, or storage errors
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	user.Email = pointer.Fallback(input.Email, user.Email)
	user.Bio = pointer.Fallback(input.Bio, user.Bio)

	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		validator := &validate.Validator{}
		validator.OneOf(auth.FieldRole, string(role),
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
		if err := validator.Err(); err != nil {
			return nil, err
		}
		user.Role = role
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		if translated := translateConstraint(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_updated_by_admin", slog.String("username", username))

	return user, nil
}

/*
DeleteUser permanently removes an account.

Description: Reviews and comments authored by the account are removed with it
through the foreign keys.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) DeleteUser(context context.Context, username string) error {
	if err := service.accountRepository.Delete(context, username); err != nil {
		return err
	}

	service.logger.Warn("user_deleted_by_admin", slog.String("username", username))

	return nil
}

// # Self Service

/*
GetSelf retrieves the authenticated user's own profile.

Parameters:
  - context: context.Context
  - userID: string (Taken from the verified token claims)

Returns:
  - *auth.User: The caller's account
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetSelf(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

// UpdateSelfInput defines the fields a user may change on their own profile.
// Role is deliberately absent.
type UpdateSelfInput struct {
	Email *string
	Bio   *string
}

/*
UpdateSelf applies a partial set of changes to the caller's own profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateSelfInput

Returns:
  - *auth.User: The updated account
  - error: Validation failures or storage errors
*/
func (service *Service) UpdateSelf(context context.Context, userID string, input UpdateSelfInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.Email = pointer.Fallback(input.Email, user.Email)
	user.Bio = pointer.Fallback(input.Bio, user.Bio)

	if err := service.accountRepository.Update(context, user); err != nil {
		if translated := translateConstraint(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("account_service_update_self_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// translateConstraint maps unique-constraint violations on the account table
// to field-level validation errors. Returns nil for anything else.
func translateConstraint(err error) error {
	switch dberr.ConstraintName(err) {
	case "account_username_key":
		return validate.RequiredError(auth.FieldUsername, "Username is already taken")
	case "account_email_key":
		return validate.RequiredError(auth.FieldEmail, "Email is already registered")
	}
	return nil
}
