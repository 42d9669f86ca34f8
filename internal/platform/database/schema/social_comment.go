package schema

// CommentTable represents the 'social.comment' table
type CommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Body     string
	PubDate  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = CommentTable{
	Table:    "social.comment",
	ID:       "id",
	ReviewID: "reviewid",
	AuthorID: "authorid",
	Body:     "body",
	PubDate:  "pubdate",
}
