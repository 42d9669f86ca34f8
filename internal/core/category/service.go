// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yonota/internal/platform/dberr"
	"github.com/taibuivan/yonota/internal/platform/validate"
	"github.com/taibuivan/yonota/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, search, limit, offset)
}

func (service *Service) GetCategoryBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.GetCategoryBySlug(context, categorySlug)
}

// CreateCategory validates and persists a new category. When the slug is
// omitted it is derived from the name.
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Slug == "" {
		category.Slug = slug.From(category.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).
		MaxLen(FieldName, category.Name, NameMaxLen).
		Slug(FieldSlug, category.Slug).
		MaxLen(FieldSlug, category.Slug, SlugMaxLen)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateCategory(context, category); err != nil {
		if dberr.IsUniqueViolation(err) {
			return validate.RequiredError(FieldSlug, "A category with this slug already exists")
		}
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, categorySlug string) error {
	if err := service.repo.DeleteCategoryBySlug(context, categorySlug); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("slug", categorySlug))
	return nil
}
