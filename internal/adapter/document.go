// Package adapter converts raw search-provider documents into the
// canonical catalog model. Adapters never panic on bad input: a document
// that cannot be mapped into a valid record surfaces as catalog.ErrNotFound.
package adapter

import "encoding/json"

// Raw document shapes as the search index stores them. Field names follow
// the provider's schema, not ours.

type imageDoc struct {
	URL string `json:"url"`
}

type seriesRefDoc struct {
	Series struct {
		ID   json.Number `json:"id"`
		Slug string      `json:"slug"`
		Name string      `json:"name"`
	} `json:"series"`
	Position float64 `json:"position"`
}

type bookDoc struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	AuthorNames []string      `json:"author_names"`
	Image       imageDoc      `json:"image"`
	// The index stores release_year as a string; non-numeric values are
	// tolerated downstream as an absent year.
	ReleaseYear string        `json:"release_year"`
	Featured    *seriesRefDoc `json:"featured_series"`
}

type authorDoc struct {
	ID         string      `json:"id"`
	Slug       string      `json:"slug"`
	Name       string      `json:"name"`
	BooksCount json.Number `json:"books_count"`
	Image      imageDoc    `json:"image"`
}

type characterDoc struct {
	ID         string      `json:"id"`
	Slug       string      `json:"slug"`
	Name       string      `json:"name"`
	BooksCount json.Number `json:"books_count"`
}

type listDoc struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BooksCount  json.Number `json:"books_count"`
	User        struct {
		ID json.Number `json:"id"`
	} `json:"user"`
}
