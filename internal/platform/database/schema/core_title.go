package schema

// TitleTable represents the 'core.title' table
type TitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
	CreatedAt   string
	UpdatedAt   string
}

// CoreTitle is the schema definition for core.title
var CoreTitle = TitleTable{
	Table:       "core.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "categoryid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
