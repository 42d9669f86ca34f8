// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

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

func (service *Service) ListGenres(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	return service.repo.ListGenres(context, search, limit, offset)
}

func (service *Service) GetGenreBySlug(context context.Context, genreSlug string) (*Genre, error) {
	return service.repo.GetGenreBySlug(context, genreSlug)
}

// CreateGenre validates and persists a new genre. When the slug is omitted it
// is derived from the name.
func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if genre.Slug == "" {
		genre.Slug = slug.From(genre.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).
		MaxLen(FieldName, genre.Name, NameMaxLen).
		Slug(FieldSlug, genre.Slug).
		MaxLen(FieldSlug, genre.Slug, SlugMaxLen)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateGenre(context, genre); err != nil {
		if dberr.IsUniqueViolation(err) {
			return validate.RequiredError(FieldSlug, "A genre with this slug already exists")
		}
		return err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return nil
}

func (service *Service) DeleteGenre(context context.Context, genreSlug string) error {
	if err := service.repo.DeleteGenreBySlug(context, genreSlug); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("slug", genreSlug))
	return nil
}
