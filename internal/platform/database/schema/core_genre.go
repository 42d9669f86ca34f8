package schema

// GenreTable represents the 'core.genre' table
type GenreTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = GenreTable{
	Table:     "core.genre",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}
