// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package title manages the works that make up the catalogue.
//
// A title ("The Green Mile", "Dookie") is the unit users review. It carries a
// release year, at most one category, and any number of genres. The rating is
// never stored: it is the average of all review scores, computed on read.
package title

import (
	"time"

	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/core/genre"
)

// Title represents a single reviewable work.
type Title struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Year        int     `json:"year"`
	Description *string `json:"description"`

	// Rating is the average review score rounded for display. It is nil
	// while the title has no reviews.
	Rating *float64 `json:"rating"`

	Category  *category.Category `json:"category"`
	Genres    []genre.Genre      `json:"genre"`
	CreatedAt time.Time          `json:"-"`
	UpdatedAt time.Time          `json:"-"`
}

// Filter holds the parameters for a filtered title listing. Zero values
// disable the corresponding predicate.
type Filter struct {
	Name         string // Substring match against the title name
	Year         int    // Exact release year
	CategorySlug string
	GenreSlug    string
}

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"

	NameMaxLen = 256
)
