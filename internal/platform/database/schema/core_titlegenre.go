package schema

// TitleGenreTable represents the 'core.titlegenre' junction table
type TitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CoreTitleGenre is the schema definition for core.titlegenre
var CoreTitleGenre = TitleGenreTable{
	Table:   "core.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}
