// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yonota/internal/api"
	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/core/genre"
	"github.com/taibuivan/yonota/internal/core/title"
	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/config"
	"github.com/taibuivan/yonota/internal/platform/notify"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/social/comment"
	"github.com/taibuivan/yonota/internal/social/review"
	"github.com/taibuivan/yonota/internal/users/account"
	"github.com/taibuivan/yonota/internal/users/auth"
)

// # Test Doubles
//
// The router is exercised end to end with in-memory stores behind every
// handler and a stub token verifier, so the assertions pin down routing and
// the middleware access rules rather than storage behavior.

type stubVerifier struct {
	claims map[string]*sec.AuthClaims
}

func (v *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if claims, ok := v.claims[tokenStr]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(userID, username, role string, staff bool, ttl time.Duration) (string, error) {
	return "signed-token", nil
}

type fakeAccountStore struct {
	users map[string]*auth.User // keyed by username
}

func (s *fakeAccountStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *fakeAccountStore) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (s *fakeAccountStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *fakeAccountStore) Create(_ context.Context, user *auth.User) error {
	s.users[user.Username] = user
	return nil
}

func (s *fakeAccountStore) MarkActive(_ context.Context, userID string) error { return nil }

func (s *fakeAccountStore) List(_ context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	out := []*auth.User{}
	for _, user := range s.users {
		out = append(out, user)
	}
	return out, len(out), nil
}

func (s *fakeAccountStore) Update(_ context.Context, user *auth.User) error {
	s.users[user.Username] = user
	return nil
}

func (s *fakeAccountStore) Delete(_ context.Context, username string) error {
	if _, ok := s.users[username]; !ok {
		return apperr.NotFound("User")
	}
	delete(s.users, username)
	return nil
}

type fakeCodeStore struct {
	codes map[string]string
}

func (s *fakeCodeStore) Set(_ context.Context, username, code string, ttl time.Duration) error {
	s.codes[username] = code
	return nil
}

func (s *fakeCodeStore) Get(_ context.Context, username string) (string, error) {
	if code, ok := s.codes[username]; ok {
		return code, nil
	}
	return "", apperr.NotFound("Confirmation code")
}

func (s *fakeCodeStore) Delete(_ context.Context, username string) error {
	delete(s.codes, username)
	return nil
}

type fakeCategoryStore struct {
	bySlug map[string]*category.Category
}

func (s *fakeCategoryStore) ListCategories(_ context.Context, search string, limit, offset int) ([]*category.Category, int, error) {
	return []*category.Category{}, 0, nil
}

func (s *fakeCategoryStore) GetCategoryBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := s.bySlug[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

func (s *fakeCategoryStore) CreateCategory(_ context.Context, c *category.Category) error { return nil }
func (s *fakeCategoryStore) DeleteCategoryBySlug(_ context.Context, slug string) error { return nil }

type fakeGenreStore struct{}

func (fakeGenreStore) ListGenres(_ context.Context, search string, limit, offset int) ([]*genre.Genre, int, error) {
	return []*genre.Genre{}, 0, nil
}

func (fakeGenreStore) GetGenreBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	return nil, apperr.NotFound("Genre")
}

func (fakeGenreStore) CreateGenre(_ context.Context, g *genre.Genre) error { return nil }
func (fakeGenreStore) DeleteGenreBySlug(_ context.Context, slug string) error { return nil }

type fakeTitleStore struct {
	titles map[int]*title.Title
	nextID int
}

func (s *fakeTitleStore) ListTitles(_ context.Context, f title.Filter, limit, offset int) ([]*title.Title, int, error) {
	out := []*title.Title{}
	for _, t := range s.titles {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (s *fakeTitleStore) GetTitle(_ context.Context, id int) (*title.Title, error) {
	if t, ok := s.titles[id]; ok {
		return t, nil
	}
	return nil, apperr.NotFound("Title")
}

func (s *fakeTitleStore) TitleExists(_ context.Context, id int) (bool, error) {
	_, ok := s.titles[id]
	return ok, nil
}

func (s *fakeTitleStore) CreateTitle(_ context.Context, t *title.Title, genreIDs []int) error {
	t.ID = s.nextID
	s.nextID++
	s.titles[t.ID] = t
	return nil
}

func (s *fakeTitleStore) UpdateTitle(_ context.Context, t *title.Title, genreIDs []int, replaceGenres bool) error {
	s.titles[t.ID] = t
	return nil
}

func (s *fakeTitleStore) DeleteTitle(_ context.Context, id int) error {
	delete(s.titles, id)
	return nil
}

type fakeReviewStore struct {
	reviews map[int]*review.Review // keyed by review ID
	nextID  int
}

func (s *fakeReviewStore) ListReviews(_ context.Context, titleID int, limit, offset int) ([]*review.Review, int, error) {
	out := []*review.Review{}
	for _, r := range s.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (s *fakeReviewStore) GetReview(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	if r, ok := s.reviews[reviewID]; ok && r.TitleID == titleID {
		return r, nil
	}
	return nil, apperr.NotFound("Review")
}

func (s *fakeReviewStore) ReviewExists(_ context.Context, titleID, reviewID int) (bool, error) {
	r, ok := s.reviews[reviewID]
	return ok && r.TitleID == titleID, nil
}

func (s *fakeReviewStore) HasAuthorReview(_ context.Context, titleID int, authorID string) (bool, error) {
	for _, r := range s.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeReviewStore) CreateReview(_ context.Context, r *review.Review) error {
	r.ID = s.nextID
	s.nextID++
	r.PubDate = time.Now()
	s.reviews[r.ID] = r
	return nil
}

func (s *fakeReviewStore) UpdateReview(_ context.Context, r *review.Review) error {
	s.reviews[r.ID] = r
	return nil
}

func (s *fakeReviewStore) DeleteReview(_ context.Context, titleID, reviewID int) error {
	delete(s.reviews, reviewID)
	return nil
}

type fakeCommentStore struct{}

func (fakeCommentStore) ListComments(_ context.Context, reviewID int, limit, offset int) ([]*comment.Comment, int, error) {
	return []*comment.Comment{}, 0, nil
}

func (fakeCommentStore) GetComment(_ context.Context, reviewID, commentID int) (*comment.Comment, error) {
	return nil, apperr.NotFound("Comment")
}

func (fakeCommentStore) CreateComment(_ context.Context, c *comment.Comment) error { return nil }
func (fakeCommentStore) UpdateComment(_ context.Context, c *comment.Comment) error { return nil }
func (fakeCommentStore) DeleteComment(_ context.Context, reviewID, commentID int) error { return nil }

// # Fixture

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := &fakeAccountStore{users: map[string]*auth.User{
		"alice": {ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser, IsActive: true},
	}}
	codes := &fakeCodeStore{codes: map[string]string{}}
	categories := &fakeCategoryStore{bySlug: map[string]*category.Category{
		"books": {ID: 1, Name: "Books", Slug: "books"},
	}}
	genres := fakeGenreStore{}
	titles := &fakeTitleStore{nextID: 2, titles: map[int]*title.Title{
		1: {ID: 1, Name: "The Green Mile", Year: 1996, Genres: []genre.Genre{}},
	}}
	reviews := &fakeReviewStore{nextID: 11, reviews: map[int]*review.Review{
		10: {ID: 10, TitleID: 1, Body: "Great", Score: 9, AuthorID: "u2", Author: "bob"},
	}}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return nil },
	}, logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(users, codes, stubTokens{}, &notify.LogDispatcher{Logger: logger}, logger)),
		Account:   account.NewHandler(account.NewService(users, logger)),
		Category:  category.NewHandler(category.NewService(categories, logger)),
		Genre:     genre.NewHandler(genre.NewService(genres, logger)),
		Title:     title.NewHandler(title.NewService(titles, categories, genres, logger)),
		Review:    review.NewHandler(review.NewService(reviews, titles, logger)),
		Comment:   comment.NewHandler(comment.NewService(fakeCommentStore{}, reviews, logger)),
	}

	verifier := &stubVerifier{claims: map[string]*sec.AuthClaims{
		"user-token":  {UserID: "u1", Username: "alice", Role: "user"},
		"admin-token": {UserID: "a1", Username: "root", Role: "admin"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "8080", Environment: "development"}
	return api.NewServer(ctx, cfg, logger, verifier, handlers).Handler()
}

func perform(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// # Access Matrix

func TestRouter_AnonymousReads(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"health", "/health"},
		{"list_titles", "/api/v1/titles"},
		{"get_title", "/api/v1/titles/1"},
		{"list_reviews", "/api/v1/titles/1/reviews"},
		{"get_review", "/api/v1/titles/1/reviews/10"},
		{"list_comments", "/api/v1/titles/1/reviews/10/comments"},
		{"list_categories", "/api/v1/categories"},
		{"list_genres", "/api/v1/genres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := perform(router, http.MethodGet, tt.path, "", "")
			assert.Equal(t, http.StatusOK, response.Code)
		})
	}
}

func TestRouter_AnonymousWritesRejected(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"create_review", http.MethodPost, "/api/v1/titles/1/reviews"},
		{"edit_review", http.MethodPatch, "/api/v1/titles/1/reviews/10"},
		{"create_title", http.MethodPost, "/api/v1/titles"},
		{"create_category", http.MethodPost, "/api/v1/categories"},
		{"delete_genre", http.MethodDelete, "/api/v1/genres/punk"},
		{"list_users", http.MethodGet, "/api/v1/users"},
		{"update_me", http.MethodPatch, "/api/v1/users/me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := perform(router, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, response.Code)
		})
	}
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	router := newRouter(t)

	response := perform(router, http.MethodGet, "/api/v1/users/me", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func TestRouter_RegularUserCapabilities(t *testing.T) {
	router := newRouter(t)

	// Admin-only surfaces stay closed.
	assert.Equal(t, http.StatusForbidden, perform(router, http.MethodPost, "/api/v1/titles", "user-token",
		`{"name":"Dune","year":1965,"category":"books"}`).Code)
	assert.Equal(t, http.StatusForbidden, perform(router, http.MethodPost, "/api/v1/categories", "user-token",
		`{"name":"Podcasts"}`).Code)
	assert.Equal(t, http.StatusForbidden, perform(router, http.MethodGet, "/api/v1/users", "user-token", "").Code)

	// Authenticated self-service and content creation work.
	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/v1/users/me", "user-token", "").Code)

	response := perform(router, http.MethodPost, "/api/v1/titles/1/reviews", "user-token",
		`{"text":"A fine record","score":8}`)
	require.Equal(t, http.StatusCreated, response.Code)
}

func TestRouter_AdminCanManageCatalog(t *testing.T) {
	router := newRouter(t)

	response := perform(router, http.MethodPost, "/api/v1/titles", "admin-token",
		`{"name":"Dune","year":1965,"category":"books"}`)
	require.Equal(t, http.StatusCreated, response.Code)
}
