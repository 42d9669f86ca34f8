// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/constants"
	"github.com/taibuivan/yonota/internal/platform/dberr"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/platform/validate"
)

// TitleChecker verifies that the parent title exists. Implemented by
// [title.PostgresRepository].
type TitleChecker interface {
	TitleExists(context context.Context, id int) (bool, error)
}

type Service struct {
	repo   Repository
	titles TitleChecker
	logger *slog.Logger
}

func NewService(repo Repository, titles TitleChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

func (service *Service) ListReviews(context context.Context, titleID int, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, limit, offset)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.GetReview(context, titleID, reviewID)
}

// CreateInput holds the author-provided review content.
type CreateInput struct {
	Body  string
	Score int
}

// CreateReview persists a new review for the authenticated user.
//
// The one-review-per-author rule is enforced twice: a pre-check for the
// common case, and translation of the unique-constraint violation for the
// concurrent one. Both surface as the same validation error.
func (service *Service) CreateReview(context context.Context, titleID int, claims *sec.AuthClaims, input CreateInput) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Body).
		Range(FieldScore, input.Score, constants.ScoreMin, constants.ScoreMax)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.repo.HasAuthorReview(context, titleID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ValidationError("You have already reviewed this title")
	}

	review := &Review{
		TitleID:  titleID,
		Body:     input.Body,
		Score:    input.Score,
		Author:   claims.Username,
		AuthorID: claims.UserID,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.ValidationError("You have already reviewed this title")
		}
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int("title_id", titleID),
		slog.Int("review_id", review.ID),
		slog.String("author", claims.Username),
	)
	return review, nil
}

// UpdateInput holds a partial review edit. Nil fields are left untouched.
type UpdateInput struct {
	Body  *string
	Score *int
}

// UpdateReview edits a review's text or score. Only the author, a moderator,
// or an admin may edit; the publication date never changes.
func (service *Service) UpdateReview(context context.Context, titleID, reviewID int, claims *sec.AuthClaims, input UpdateInput) (*Review, error) {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !claims.CanManageContent(review.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify another user's review")
	}

	if input.Body != nil {
		review.Body = *input.Body
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, review.Body).
		Range(FieldScore, review.Score, constants.ScoreMin, constants.ScoreMax)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int("review_id", review.ID))
	return review, nil
}

// DeleteReview removes a review and, through the schema cascade, its comments.
func (service *Service) DeleteReview(context context.Context, titleID, reviewID int, claims *sec.AuthClaims) error {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !claims.CanManageContent(review.AuthorID) {
		return apperr.Forbidden("You cannot delete another user's review")
	}

	if err := service.repo.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted",
		slog.Int("review_id", reviewID),
		slog.String("deleted_by", claims.Username),
	)
	return nil
}

func (service *Service) requireTitle(context context.Context, titleID int) error {
	exists, err := service.titles.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
