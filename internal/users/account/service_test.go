// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/users/account"
	"github.com/taibuivan/yonota/internal/users/auth"
	"github.com/taibuivan/yonota/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	users     map[string]*auth.User // keyed by username
	createErr error
	updateErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*auth.User{}}
}

func (r *fakeRepository) List(_ context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	out := []*auth.User{}
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, len(out), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := r.users[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) Create(_ context.Context, user *auth.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeRepository) Update(_ context.Context, user *auth.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, username)
	return nil
}

func newService(repo *fakeRepository) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, logger)
}

// # Administration

func TestCreateUser_DefaultsAndRole(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, created.Role, "empty role defaults to user")
	assert.True(t, created.IsActive, "admin-created accounts start active")
	assert.NotEmpty(t, created.ID)

	moderator, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, moderator.Role)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "overlord",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestCreateUser_DuplicateTranslated(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "account_username_key"}
	service := newService(repo)

	_, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, auth.FieldUsername, appErr.Details[0].Field)
}

func TestUpdateUser_RoleChange(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	_, err := service.CreateUser(context.Background(), account.CreateInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	updated, err := service.UpdateUser(context.Background(), "alice", account.UpdateInput{Role: pointer.To("moderator")})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)

	_, err = service.UpdateUser(context.Background(), "alice", account.UpdateInput{Role: pointer.To("overlord")})
	require.Error(t, err)
}

func TestUpdateUser_Unknown(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.UpdateUser(context.Background(), "ghost", account.UpdateInput{Bio: pointer.To("hi")})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	_, err := service.CreateUser(context.Background(), account.CreateInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(context.Background(), "alice"))

	err = service.DeleteUser(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Self Service

func TestUpdateSelf_NeverTouchesRole(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateUser(context.Background(), account.CreateInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	bio := "Reader of long books."
	updated, err := service.UpdateSelf(context.Background(), created.ID, account.UpdateSelfInput{Bio: pointer.To(bio)})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role)
}

func TestUpdateSelf_EmailCollision(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateUser(context.Background(), account.CreateInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	repo.updateErr = &pgconn.PgError{Code: "23505", ConstraintName: "account_email_key"}
	_, err = service.UpdateSelf(context.Background(), created.ID, account.UpdateSelfInput{Email: pointer.To("bob@example.com")})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, auth.FieldEmail, appErr.Details[0].Field)
}
