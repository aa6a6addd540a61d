package search

import "shelvd/internal/catalog"

// Profile is the per-category search parameterization: which collection to
// hit, which fields to query with what weights, and the default sort.
// Profiles are data, not logic; callers override them per category when
// constructing the engine.
type Profile struct {
	Collection string
	QueryBy    string
	Weights    string
	SortBy     string
	PerPage    int
}

// exactBooksSort is forced for exact-mode book lookups regardless of the
// configured books profile.
const exactBooksSort = "users_count:desc,_text_match:desc"

// DefaultProfiles returns the stock parameterization for every category.
func DefaultProfiles() map[catalog.Category]Profile {
	return map[catalog.Category]Profile{
		catalog.CategoryBooks: {
			Collection: "books",
			QueryBy:    "title,isbn_13,series_names,author_names",
			Weights:    "5,5,3,1",
			SortBy:     "users_count:desc,_text_match:desc",
			PerPage:    30,
		},
		catalog.CategoryAuthors: {
			Collection: "authors",
			QueryBy:    "name,name_personal,alternate_names",
			Weights:    "5,3,3",
			SortBy:     "users_count:desc,_text_match:desc",
			PerPage:    30,
		},
		catalog.CategoryCharacters: {
			Collection: "characters",
			QueryBy:    "name",
			Weights:    "5",
			SortBy:     "books_count:desc,_text_match:desc",
			PerPage:    30,
		},
		catalog.CategoryLists: {
			Collection: "lists",
			QueryBy:    "name,description",
			Weights:    "5,1",
			SortBy:     "followers_count:desc,_text_match:desc",
			PerPage:    30,
		},
		catalog.CategorySeries: {
			Collection: "series",
			QueryBy:    "name",
			Weights:    "5",
			SortBy:     "readers_count:desc,_text_match:desc",
			PerPage:    30,
		},
		catalog.CategoryUsers: {
			Collection: "users",
			QueryBy:    "username,name",
			Weights:    "5,3",
			SortBy:     "_text_match:desc",
			PerPage:    30,
		},
	}
}
