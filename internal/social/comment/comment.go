// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements the discussion threads attached to reviews.
//
// Comments are plain text replies: no score, no nesting. They live and die
// with their parent review.
package comment

import "time"

// Comment represents one reply on a review.
type Comment struct {
	ID       int    `json:"id"`
	ReviewID int    `json:"-"`
	Body     string `json:"text"`

	// Author is the commenter's username, joined in from users.account.
	Author   string `json:"author"`
	AuthorID string `json:"-"`

	PubDate time.Time `json:"pub_date"`
}

const (
	FieldText = "text"
)
