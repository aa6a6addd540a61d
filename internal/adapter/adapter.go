package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shelvd/internal/catalog"
)

// ErrUnsupportedCategory is returned by ParseDocument for categories the
// search index has no canonical mapping for (series member documents and
// user profiles). Callers treat it as a not-found outcome.
var ErrUnsupportedCategory = errors.New("adapter: unsupported category")

// UnknownAuthorName is the placeholder used when a book document carries no
// author names at all.
const UnknownAuthorName = "???"

// Image hosts. The index serves covers from a CDN staging host that is not
// guaranteed publicly stable; both the staging and the production host are
// rewritten to the canonical storage host, in that order.
const (
	stagingAssetHost    = "assets.hardcover-staging.app"
	productionAssetHost = "assets.hardcover.app"
	storageAssetHost    = "storage.googleapis.com/hardcover"
)

// CanonicalizeImageURL rewrites provider CDN hosts to the stable storage
// host. The two substitutions are independent and ordered.
func CanonicalizeImageURL(url string) string {
	url = strings.ReplaceAll(url, stagingAssetHost, storageAssetHost)
	url = strings.ReplaceAll(url, productionAssetHost, storageAssetHost)
	return url
}

// ParseDocument maps one raw search document to its canonical record. The
// category switch is exhaustive over catalog.Categories: series and users
// have no document mapping and return ErrUnsupportedCategory, as does any
// category this package has never heard of.
func ParseDocument(category catalog.Category, doc json.RawMessage) (catalog.Artifact, error) {
	switch category {
	case catalog.CategoryBooks:
		return ParseBookDocument(doc)
	case catalog.CategoryAuthors:
		return ParseAuthorDocument(doc)
	case catalog.CategoryCharacters:
		return ParseCharacterDocument(doc)
	case catalog.CategoryLists:
		return ParseListDocument(doc)
	case catalog.CategorySeries, catalog.CategoryUsers:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCategory, category)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCategory, category)
	}
}

// ParseBookDocument maps a raw book document to a canonical Book.
func ParseBookDocument(doc json.RawMessage) (catalog.Book, error) {
	var d bookDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return catalog.Book{}, fmt.Errorf("%w: %v", catalog.ErrNotFound, err)
	}

	b := catalog.Book{
		BaseInfo: catalog.BaseInfo{
			Key:    d.ID,
			Slug:   d.Slug,
			Source: catalog.SourceHardcover,
		},
		Title:       d.Title,
		Author:      catalog.BookAuthor{Name: firstOr(d.AuthorNames, UnknownAuthorName)},
		Image:       CanonicalizeImageURL(d.Image.URL),
		Description: d.Description,
		ReleaseYear: coerceYear(d.ReleaseYear),
	}
	if d.Featured != nil && d.Featured.Series.Name != "" {
		b.Series = &catalog.BookSeries{
			Key:  d.Featured.Series.ID.String(),
			Slug: d.Featured.Series.Slug,
			Name: d.Featured.Series.Name,
		}
	}

	if err := catalog.Validate(b); err != nil {
		return catalog.Book{}, err
	}
	return b, nil
}

// ParseAuthorDocument maps a raw author document to a canonical Author.
func ParseAuthorDocument(doc json.RawMessage) (catalog.Author, error) {
	var d authorDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return catalog.Author{}, fmt.Errorf("%w: %v", catalog.ErrNotFound, err)
	}

	a := catalog.Author{
		BaseInfo: catalog.BaseInfo{
			Key:    d.ID,
			Slug:   d.Slug,
			Source: catalog.SourceHardcover,
		},
		Name:       d.Name,
		Image:      CanonicalizeImageURL(d.Image.URL),
		BooksCount: coerceCount(d.BooksCount),
	}

	if err := catalog.Validate(a); err != nil {
		return catalog.Author{}, err
	}
	return a, nil
}

// ParseCharacterDocument maps a raw character document to a canonical
// Character.
func ParseCharacterDocument(doc json.RawMessage) (catalog.Character, error) {
	var d characterDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return catalog.Character{}, fmt.Errorf("%w: %v", catalog.ErrNotFound, err)
	}

	c := catalog.Character{
		BaseInfo: catalog.BaseInfo{
			Key:    d.ID,
			Slug:   d.Slug,
			Source: catalog.SourceHardcover,
		},
		Name:       d.Name,
		BooksCount: coerceCount(d.BooksCount),
	}

	if err := catalog.Validate(c); err != nil {
		return catalog.Character{}, err
	}
	return c, nil
}

// ParseListDocument maps a raw list document to a canonical List. Books
// start empty; the list's members are materialized lazily elsewhere.
func ParseListDocument(doc json.RawMessage) (catalog.List, error) {
	var d listDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return catalog.List{}, fmt.Errorf("%w: %v", catalog.ErrNotFound, err)
	}

	l := catalog.NewList(catalog.BaseInfo{
		Key:    d.ID,
		Slug:   d.Slug,
		Source: catalog.SourceHardcover,
	}, strings.TrimSpace(d.Name))
	l.Description = d.Description
	l.BooksCount = coerceCount(d.BooksCount)
	if d.User.ID.String() != "" {
		l.Creator = catalog.ListCreator{Key: d.User.ID.String()}
	}

	if err := catalog.Validate(l); err != nil {
		return catalog.List{}, err
	}
	return l, nil
}

func firstOr(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}

// coerceYear converts the provider's string year. Non-numeric input yields
// nil rather than an error; consumers display an absent year as empty.
func coerceYear(s string) *int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &y
}

// coerceCount converts a possibly-absent numeric field to an int, defaulting
// to zero.
func coerceCount(n json.Number) int {
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0
	}
	return v
}
