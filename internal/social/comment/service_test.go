// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/social/comment"
)

// # Test Doubles

// fakeReviewChecker knows one review: (titleID 1, reviewID 10).
type fakeReviewChecker struct{}

func (c *fakeReviewChecker) ReviewExists(_ context.Context, titleID, reviewID int) (bool, error) {
	return titleID == 1 && reviewID == 10, nil
}

type fakeRepository struct {
	comments map[int]*comment.Comment
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[int]*comment.Comment{}, nextID: 1}
}

func (r *fakeRepository) ListComments(_ context.Context, reviewID int, limit, offset int) ([]*comment.Comment, int, error) {
	out := []*comment.Comment{}
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetComment(_ context.Context, reviewID, commentID int) (*comment.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (r *fakeRepository) CreateComment(_ context.Context, c *comment.Comment) error {
	c.ID = r.nextID
	c.PubDate = time.Now()
	r.nextID++
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepository) UpdateComment(_ context.Context, c *comment.Comment) error {
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepository) DeleteComment(_ context.Context, reviewID, commentID int) error {
	delete(r.comments, commentID)
	return nil
}

func newService(repo *fakeRepository) *comment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comment.NewService(repo, &fakeReviewChecker{}, logger)
}

func userClaims(id, username string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: username, Role: string(sec.RoleUser)}
}

// # Tests

func TestCreateComment_ParentMustExist(t *testing.T) {
	service := newService(newFakeRepository())

	tests := []struct {
		name     string
		titleID  int
		reviewID int
	}{
		{"unknown_review", 1, 99},
		{"review_under_wrong_title", 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateComment(context.Background(), tt.titleID, tt.reviewID, userClaims("u1", "alice"), "Hello")
			require.Error(t, err)
			assert.True(t, apperr.IsNotFound(err))
		})
	}
}

func TestCreateComment_RequiresText(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.CreateComment(context.Background(), 1, 10, userClaims("u1", "alice"), "  ")
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestCreateComment_Success(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateComment(context.Background(), 1, 10, userClaims("u1", "alice"), "Agreed")
	require.NoError(t, err)
	assert.Equal(t, "Agreed", created.Body)
	assert.Equal(t, "alice", created.Author)
	assert.False(t, created.PubDate.IsZero())
}

func TestUpdateComment_Permissions(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"author", userClaims("u1", "alice"), true},
		{"other_user", userClaims("u2", "bob"), false},
		{"moderator", &sec.AuthClaims{UserID: "u3", Username: "mod", Role: string(sec.RoleModerator)}, true},
		{"staff", &sec.AuthClaims{UserID: "u4", Username: "ops", Role: string(sec.RoleUser), Staff: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newService(repo)

			created, err := service.CreateComment(context.Background(), 1, 10, userClaims("u1", "alice"), "Original")
			require.NoError(t, err)

			updated, err := service.UpdateComment(context.Background(), 1, 10, created.ID, tt.claims, "Edited")
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "Edited", updated.Body)
			} else {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, 403, appErr.HTTPStatus)
			}
		})
	}
}

func TestDeleteComment_OnlyPrivileged(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateComment(context.Background(), 1, 10, userClaims("u1", "alice"), "Ephemeral")
	require.NoError(t, err)

	err = service.DeleteComment(context.Background(), 1, 10, created.ID, userClaims("u2", "bob"))
	require.Error(t, err)

	err = service.DeleteComment(context.Background(), 1, 10, created.ID, userClaims("u1", "alice"))
	require.NoError(t, err)

	_, err = service.GetComment(context.Background(), 1, 10, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
