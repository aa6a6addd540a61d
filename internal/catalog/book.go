package catalog

// BookAuthor is the author reference embedded in a Book. It is a reference,
// not a full Author record: search documents only carry the primary
// author's name and key.
type BookAuthor struct {
	Key  string `json:"key,omitempty"`
	Slug string `json:"slug,omitempty"`
	Name string `json:"name" validate:"required"`
}

// BookSeries is the series reference embedded in a Book.
type BookSeries struct {
	Key  string `json:"key" validate:"required"`
	Slug string `json:"slug,omitempty"`
	Name string `json:"name" validate:"required"`
}

// Book is the canonical book record. Instances are value objects built
// fresh from each provider response; they are never mutated in place.
type Book struct {
	BaseInfo
	Title       string      `json:"title" validate:"required"`
	Author      BookAuthor  `json:"author"`
	Image       string      `json:"image,omitempty"`
	Description string      `json:"description,omitempty"`
	Series      *BookSeries `json:"series,omitempty"`
	// ReleaseYear is nil when the provider sent a non-numeric or missing
	// year; consumers render it as empty rather than failing.
	ReleaseYear *int `json:"releaseYear,omitempty"`
}

// Kind implements Artifact.
func (Book) Kind() Category { return CategoryBooks }

// Author is the canonical author record.
type Author struct {
	BaseInfo
	Name       string `json:"name" validate:"required"`
	Image      string `json:"image,omitempty"`
	BooksCount int    `json:"booksCount,omitempty"`
}

// Kind implements Artifact.
func (Author) Kind() Category { return CategoryAuthors }

// Character is the canonical character record.
type Character struct {
	BaseInfo
	Name       string `json:"name" validate:"required"`
	BooksCount int    `json:"booksCount,omitempty"`
}

// Kind implements Artifact.
func (Character) Kind() Category { return CategoryCharacters }

// Series is the canonical series record. Titles holds the member book
// titles as bare strings; resolving them to full Book records is the
// collection resolver's job.
type Series struct {
	BaseInfo
	Name       string   `json:"name" validate:"required"`
	BooksCount int      `json:"booksCount,omitempty"`
	Titles     []string `json:"titles,omitempty"`
}

// Kind implements Artifact.
func (Series) Kind() Category { return CategorySeries }
