// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre manages the catalogue's genre taxonomy.
//
// Genres are flat labels ("Drama", "Sci-Fi") attached to titles through a
// many-to-many relation. A title may carry any number of genres.
package genre

import "time"

// Genre represents a single genre label.
type Genre struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

const (
	FieldName = "name"
	FieldSlug = "slug"

	NameMaxLen = 256
	SlugMaxLen = 50
)
