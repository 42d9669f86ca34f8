// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category manages the catalogue's top-level work types.
//
// A category classifies what kind of work a title is ("Movies", "Books",
// "Music"). Every title carries at most one category.
package category

import "time"

// Category represents a kind of work in the catalogue.
type Category struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

const (
	FieldName = "name"
	FieldSlug = "slug"

	// NameMaxLen and SlugMaxLen mirror the column limits in core.category.
	NameMaxLen = 256
	SlugMaxLen = 50
)
