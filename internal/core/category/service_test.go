// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/dberr"
)

type fakeRepository struct {
	bySlug map[string]*category.Category
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: map[string]*category.Category{}, nextID: 1}
}

func (r *fakeRepository) ListCategories(_ context.Context, search string, limit, offset int) ([]*category.Category, int, error) {
	out := []*category.Category{}
	for _, c := range r.bySlug {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetCategoryBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.bySlug[slug]; ok {
		return c, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) CreateCategory(_ context.Context, c *category.Category) error {
	if _, ok := r.bySlug[c.Slug]; ok {
		// Same shape the Postgres store produces for a duplicate slug.
		return dberr.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: "category_slug_key"}, "create_category")
	}
	c.ID = r.nextID
	r.nextID++
	r.bySlug[c.Slug] = c
	return nil
}

func (r *fakeRepository) DeleteCategoryBySlug(_ context.Context, slug string) error {
	if _, ok := r.bySlug[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.bySlug, slug)
	return nil
}

func newService(repo *fakeRepository) *category.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(repo, logger)
}

func TestCreateCategory_SlugDerivedFromName(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	tests := []struct {
		name     string
		input    string
		wantSlug string
	}{
		{"simple", "Books", "books"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"diacritics", "Café Culture", "cafe-culture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &category.Category{Name: tt.input}
			require.NoError(t, service.CreateCategory(context.Background(), c))
			assert.Equal(t, tt.wantSlug, c.Slug)
		})
	}
}

func TestCreateCategory_ExplicitSlugKept(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	c := &category.Category{Name: "Books", Slug: "reading"}
	require.NoError(t, service.CreateCategory(context.Background(), c))
	assert.Equal(t, "reading", c.Slug)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Books"}))

	err := service.CreateCategory(context.Background(), &category.Category{Name: "Books"})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestCreateCategory_InvalidInput(t *testing.T) {
	service := newService(newFakeRepository())

	err := service.CreateCategory(context.Background(), &category.Category{Name: "   "})
	require.Error(t, err)

	err = service.CreateCategory(context.Background(), &category.Category{Name: "Books", Slug: "Not A Slug"})
	require.Error(t, err)
}

func TestDeleteCategory_Unknown(t *testing.T) {
	service := newService(newFakeRepository())

	err := service.DeleteCategory(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
