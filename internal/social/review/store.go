// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

type Repository interface {
	ListReviews(context context.Context, titleID int, limit, offset int) ([]*Review, int, error)

	// GetReview is scoped to the title: a review reached through the wrong
	// title's URL does not exist.
	GetReview(context context.Context, titleID, reviewID int) (*Review, error)

	ReviewExists(context context.Context, titleID, reviewID int) (bool, error)
	HasAuthorReview(context context.Context, titleID int, authorID string) (bool, error)

	CreateReview(context context.Context, review *Review) error
	UpdateReview(context context.Context, review *Review) error
	DeleteReview(context context.Context, titleID, reviewID int) error
}
