// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/platform/validate"
)

// ReviewChecker verifies that the parent review exists under the given title.
// Implemented by [review.PostgresRepository].
type ReviewChecker interface {
	ReviewExists(context context.Context, titleID, reviewID int) (bool, error)
}

type Service struct {
	repo    Repository
	reviews ReviewChecker
	logger  *slog.Logger
}

func NewService(repo Repository, reviews ReviewChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reviews: reviews,
		logger:  logger,
	}
}

func (service *Service) ListComments(context context.Context, titleID, reviewID int, limit, offset int) ([]*Comment, int, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, limit, offset)
}

func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int) (*Comment, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetComment(context, reviewID, commentID)
}

// CreateComment adds a reply to a review for the authenticated user.
func (service *Service) CreateComment(context context.Context, titleID, reviewID int, claims *sec.AuthClaims, body string) (*Comment, error) {
	if err := service.requireReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, body)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		Body:     body,
		Author:   claims.Username,
		AuthorID: claims.UserID,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int("review_id", reviewID),
		slog.Int("comment_id", comment.ID),
		slog.String("author", claims.Username),
	)
	return comment, nil
}

// UpdateComment edits a comment's text. Only the author, a moderator, or an
// admin may edit.
func (service *Service) UpdateComment(context context.Context, titleID, reviewID, commentID int, claims *sec.AuthClaims, body string) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !claims.CanManageContent(comment.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify another user's comment")
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, body)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment.Body = body
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int("comment_id", comment.ID))
	return comment, nil
}

func (service *Service) DeleteComment(context context.Context, titleID, reviewID, commentID int, claims *sec.AuthClaims) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !claims.CanManageContent(comment.AuthorID) {
		return apperr.Forbidden("You cannot delete another user's comment")
	}

	if err := service.repo.DeleteComment(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.Int("comment_id", commentID),
		slog.String("deleted_by", claims.Username),
	)
	return nil
}

func (service *Service) requireReview(context context.Context, titleID, reviewID int) error {
	exists, err := service.reviews.ReviewExists(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
