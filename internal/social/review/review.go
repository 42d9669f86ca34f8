// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package review implements the scored reviews users leave on titles.
//
// Each user may review a given title exactly once. The review's score feeds
// the title's on-read average rating; its publication date is fixed at
// creation and survives later edits.
package review

import "time"

// Review represents one user's scored opinion of a title.
type Review struct {
	ID      int    `json:"id"`
	TitleID int    `json:"-"`
	Body    string `json:"text"`
	Score   int    `json:"score"`

	// Author is the reviewer's username, joined in from users.account.
	Author   string `json:"author"`
	AuthorID string `json:"-"`

	PubDate time.Time `json:"pub_date"`
}

const (
	FieldText  = "text"
	FieldScore = "score"
)
