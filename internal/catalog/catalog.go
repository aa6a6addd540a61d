// Package catalog defines the canonical, source-agnostic model shared by
// every other package: books, authors, characters, series and lists, plus
// the enums that identify where a record came from and what kind of search
// produced it.
package catalog

import "errors"

// ErrNotFound is returned when a record cannot be resolved. Validation
// failures on external data are folded into this: a record that does not
// parse is a record that does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Source identifies the external provider a record originated from.
type Source string

const (
	SourceOpenLibrary Source = "ol"
	SourceNYT         Source = "nyt"
	SourceGoogle      Source = "google"
	SourceHardcover   Source = "hc"
	SourceShelvd      Source = "shelvd"
)

// Valid reports whether s is one of the known providers.
func (s Source) Valid() bool {
	switch s {
	case SourceOpenLibrary, SourceNYT, SourceGoogle, SourceHardcover, SourceShelvd:
		return true
	}
	return false
}

// Category is the kind of record a search targets or returns.
type Category string

const (
	CategoryBooks      Category = "books"
	CategoryAuthors    Category = "authors"
	CategoryCharacters Category = "characters"
	CategoryLists      Category = "lists"
	CategorySeries     Category = "series"
	CategoryUsers      Category = "users"
)

// Categories lists every search category in display order.
func Categories() []Category {
	return []Category{
		CategoryBooks,
		CategoryAuthors,
		CategoryCharacters,
		CategoryLists,
		CategorySeries,
		CategoryUsers,
	}
}

// Valid reports whether c is a known search category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBooks, CategoryAuthors, CategoryCharacters, CategoryLists, CategorySeries, CategoryUsers:
		return true
	}
	return false
}

// ListType distinguishes system-curated lists from user-created and
// user-followed ones.
type ListType string

const (
	ListTypeCore      ListType = "core"
	ListTypeCreated   ListType = "created"
	ListTypeFollowing ListType = "following"
)

// Valid reports whether t is a known list type.
func (t ListType) Valid() bool {
	switch t {
	case ListTypeCore, ListTypeCreated, ListTypeFollowing:
		return true
	}
	return false
}

// BaseInfo carries the identity fields every canonical record shares.
// Key is the stable per-source identifier; Slug is a human-readable,
// URL-safe alternate and is not guaranteed unique across sources.
type BaseInfo struct {
	Key    string `json:"key" validate:"required"`
	Slug   string `json:"slug,omitempty"`
	Source Source `json:"source" validate:"required,oneof=ol nyt google hc shelvd"`
}

// Artifact is implemented by every canonical record type, tagging it with
// the search category it belongs to.
type Artifact interface {
	Kind() Category
}
