package schema

// CategoryTable represents the 'core.category' table
type CategoryTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CategoryTable{
	Table:     "core.category",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}
