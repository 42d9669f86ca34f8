// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

type Repository interface {
	ListComments(context context.Context, reviewID int, limit, offset int) ([]*Comment, int, error)
	GetComment(context context.Context, reviewID, commentID int) (*Comment, error)
	CreateComment(context context.Context, comment *Comment) error
	UpdateComment(context context.Context, comment *Comment) error
	DeleteComment(context context.Context, reviewID, commentID int) error
}
