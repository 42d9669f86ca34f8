package schema

// ReviewTable represents the 'social.review' table
type ReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Body     string
	Score    string
	PubDate  string
}

// SocialReview is the schema definition for social.review
var SocialReview = ReviewTable{
	Table:    "social.review",
	ID:       "id",
	TitleID:  "titleid",
	AuthorID: "authorid",
	Body:     "body",
	Score:    "score",
	PubDate:  "pubdate",
}
