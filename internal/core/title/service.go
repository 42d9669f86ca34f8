// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/core/genre"
	"github.com/taibuivan/yonota/internal/platform/validate"
)

// CategoryResolver resolves a category slug to its entity. Implemented by
// [category.PostgresRepository].
type CategoryResolver interface {
	GetCategoryBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver resolves a genre slug to its entity. Implemented by
// [genre.PostgresRepository].
type GenreResolver interface {
	GetGenreBySlug(context context.Context, slug string) (*genre.Genre, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (service *Service) ListTitles(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.ListTitles(context, filter, limit, offset)
}

func (service *Service) GetTitle(context context.Context, id int) (*Title, error) {
	return service.repo.GetTitle(context, id)
}

// CreateInput holds the data required to register a new title.
type CreateInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug string
	GenreSlugs   []string
}

// CreateTitle validates the input, resolves the category and genre slugs,
// and persists the new title. Unknown slugs surface as NOT_FOUND.
func (service *Service) CreateTitle(context context.Context, input CreateInput) (*Title, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Custom(FieldYear, input.Year == 0, "This field is required").
		YearNotFuture(FieldYear, input.Year).
		Required(FieldCategory, input.CategorySlug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	cat, err := service.categories.GetCategoryBySlug(context, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	genres, genreIDs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    cat,
		Genres:      genres,
	}

	if err := service.repo.CreateTitle(context, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int("title_id", title.ID),
		slog.String("name", title.Name),
	)
	return title, nil
}

// UpdateInput holds a partial set of changes. Nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// UpdateTitle applies a partial update. The genre relation is only rewritten
// when GenreSlugs is present; an empty list detaches every genre. The same
// convention applies to the category: an explicit empty slug detaches it.
func (service *Service) UpdateTitle(context context.Context, id int, input UpdateInput) (*Title, error) {
	title, err := service.repo.GetTitle(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = strings.TrimSpace(*input.Name)
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, title.Name).
		MaxLen(FieldName, title.Name, NameMaxLen).
		YearNotFuture(FieldYear, title.Year)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.CategorySlug != nil {
		if *input.CategorySlug == "" {
			title.Category = nil
		} else {
			cat, err := service.categories.GetCategoryBySlug(context, *input.CategorySlug)
			if err != nil {
				return nil, err
			}
			title.Category = cat
		}
	}

	var genreIDs []int
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genres, ids, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
		genreIDs = ids
	}

	if err := service.repo.UpdateTitle(context, title, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int("title_id", title.ID))
	return title, nil
}

// DeleteTitle removes a title. Its reviews and their comments go with it.
func (service *Service) DeleteTitle(context context.Context, id int) error {
	if err := service.repo.DeleteTitle(context, id); err != nil {
		return err
	}

	service.logger.Warn("title_deleted", slog.Int("title_id", id))
	return nil
}

// resolveGenres maps each slug to its stored genre, preserving input order.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]genre.Genre, []int, error) {
	genres := make([]genre.Genre, 0, len(slugs))
	ids := make([]int, 0, len(slugs))

	for _, s := range slugs {
		g, err := service.genres.GetGenreBySlug(context, s)
		if err != nil {
			return nil, nil, err
		}
		genres = append(genres, *g)
		ids = append(ids, g.ID)
	}

	return genres, ids, nil
}
