// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/social/review"
)

// # Test Doubles

type fakeTitleChecker struct {
	existing map[int]bool
}

func (c *fakeTitleChecker) TitleExists(_ context.Context, id int) (bool, error) {
	return c.existing[id], nil
}

type fakeRepository struct {
	reviews   map[int]*review.Review
	nextID    int
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: map[int]*review.Review{}, nextID: 1}
}

func (r *fakeRepository) ListReviews(_ context.Context, titleID int, limit, offset int) ([]*review.Review, int, error) {
	out := []*review.Review{}
	for _, rev := range r.reviews {
		if rev.TitleID == titleID {
			out = append(out, rev)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetReview(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	rev, ok := r.reviews[reviewID]
	if !ok || rev.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return rev, nil
}

func (r *fakeRepository) ReviewExists(_ context.Context, titleID, reviewID int) (bool, error) {
	rev, ok := r.reviews[reviewID]
	return ok && rev.TitleID == titleID, nil
}

func (r *fakeRepository) HasAuthorReview(_ context.Context, titleID int, authorID string) (bool, error) {
	for _, rev := range r.reviews {
		if rev.TitleID == titleID && rev.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) CreateReview(_ context.Context, rev *review.Review) error {
	if r.createErr != nil {
		return r.createErr
	}
	rev.ID = r.nextID
	rev.PubDate = time.Now()
	r.nextID++
	r.reviews[rev.ID] = rev
	return nil
}

func (r *fakeRepository) UpdateReview(_ context.Context, rev *review.Review) error {
	r.reviews[rev.ID] = rev
	return nil
}

func (r *fakeRepository) DeleteReview(_ context.Context, titleID, reviewID int) error {
	delete(r.reviews, reviewID)
	return nil
}

func newService(repo *fakeRepository, titles *fakeTitleChecker) *review.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return review.NewService(repo, titles, logger)
}

func userClaims(id, username string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: username, Role: string(sec.RoleUser)}
}

// # Create

func TestCreateReview_TitleMustExist(t *testing.T) {
	service := newService(newFakeRepository(), &fakeTitleChecker{existing: map[int]bool{}})

	_, err := service.CreateReview(context.Background(), 42, userClaims("u1", "alice"), review.CreateInput{
		Body:  "Great",
		Score: 8,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateReview_ScoreBounds(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true}})

	tests := []struct {
		name    string
		score   int
		wantErr bool
	}{
		{"below_minimum", 0, true},
		{"minimum", 1, false},
		{"maximum", 10, false},
		{"above_maximum", 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author := userClaims("u-"+tt.name, tt.name)
			_, err := service.CreateReview(context.Background(), 1, author, review.CreateInput{
				Body:  "Text",
				Score: tt.score,
			})
			if tt.wantErr {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, 400, appErr.HTTPStatus)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateReview_OnePerAuthor(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true}})

	alice := userClaims("u1", "alice")
	_, err := service.CreateReview(context.Background(), 1, alice, review.CreateInput{Body: "First", Score: 7})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), 1, alice, review.CreateInput{Body: "Second", Score: 9})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)

	// The same author can still review a different title.
	service = newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true, 2: true}})
	_, err = service.CreateReview(context.Background(), 2, alice, review.CreateInput{Body: "Other", Score: 5})
	require.NoError(t, err)
}

func TestCreateReview_ConcurrentDuplicateTranslated(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "review_title_author_key"}
	service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true}})

	// The pre-check passes (no stored review), but the insert loses the race.
	_, err := service.CreateReview(context.Background(), 1, userClaims("u1", "alice"), review.CreateInput{
		Body:  "Racing",
		Score: 6,
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus, "the race loser gets the same answer as the pre-check")
}

// # Update & Delete Permissions

func TestUpdateReview_Permissions(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"author", userClaims("u1", "alice"), true},
		{"other_user", userClaims("u2", "bob"), false},
		{"moderator", &sec.AuthClaims{UserID: "u3", Username: "mod", Role: string(sec.RoleModerator)}, true},
		{"admin", &sec.AuthClaims{UserID: "u4", Username: "root", Role: string(sec.RoleAdmin)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true}})

			created, err := service.CreateReview(context.Background(), 1, userClaims("u1", "alice"), review.CreateInput{
				Body:  "Original",
				Score: 5,
			})
			require.NoError(t, err)

			newBody := "Edited"
			updated, err := service.UpdateReview(context.Background(), 1, created.ID, tt.claims, review.UpdateInput{Body: &newBody})

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "Edited", updated.Body)
				assert.Equal(t, "alice", updated.Author, "authorship never changes on edit")
			} else {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, 403, appErr.HTTPStatus)
			}
		})
	}
}

func TestUpdateReview_PubDateUnchanged(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true}})

	alice := userClaims("u1", "alice")
	created, err := service.CreateReview(context.Background(), 1, alice, review.CreateInput{Body: "Original", Score: 5})
	require.NoError(t, err)
	published := created.PubDate

	newScore := 9
	updated, err := service.UpdateReview(context.Background(), 1, created.ID, alice, review.UpdateInput{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, published, updated.PubDate)
	assert.Equal(t, 9, updated.Score)
}

func TestDeleteReview_Permissions(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true}})

	created, err := service.CreateReview(context.Background(), 1, userClaims("u1", "alice"), review.CreateInput{
		Body:  "To delete",
		Score: 4,
	})
	require.NoError(t, err)

	err = service.DeleteReview(context.Background(), 1, created.ID, userClaims("u2", "bob"))
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)

	err = service.DeleteReview(context.Background(), 1, created.ID, &sec.AuthClaims{UserID: "u3", Username: "mod", Role: string(sec.RoleModerator)})
	require.NoError(t, err)

	_, err = service.GetReview(context.Background(), 1, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetReview_WrongTitleScoping(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, &fakeTitleChecker{existing: map[int]bool{1: true, 2: true}})

	created, err := service.CreateReview(context.Background(), 1, userClaims("u1", "alice"), review.CreateInput{
		Body:  "Scoped",
		Score: 7,
	})
	require.NoError(t, err)

	// Addressing the review through the wrong parent title is a 404.
	_, err = service.GetReview(context.Background(), 2, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
