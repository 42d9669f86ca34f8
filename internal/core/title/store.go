// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

type Repository interface {
	ListTitles(context context.Context, f Filter, limit, offset int) ([]*Title, int, error)
	GetTitle(context context.Context, id int) (*Title, error)
	TitleExists(context context.Context, id int) (bool, error)

	// CreateTitle inserts the title row and its genre junction rows in one
	// transaction. The generated ID and timestamps are written back to t.
	CreateTitle(context context.Context, t *Title, genreIDs []int) error

	// UpdateTitle rewrites the mutable columns. When replaceGenres is true
	// the junction rows are replaced with genreIDs in the same transaction.
	UpdateTitle(context context.Context, t *Title, genreIDs []int, replaceGenres bool) error

	DeleteTitle(context context.Context, id int) error
}
