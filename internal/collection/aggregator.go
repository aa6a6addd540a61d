package collection

import (
	"context"

	"shelvd/internal/catalog"
	"shelvd/internal/search"
)

// BulkSearcher is the slice of the search engine the resolver needs.
type BulkSearcher interface {
	BulkExact(ctx context.Context, queries []search.ExactQuery) ([]search.Response, error)
}

// Resolver materializes bare title references into full canonical books
// with one batched exact-match request.
type Resolver struct {
	engine BulkSearcher
}

// NewResolver builds a resolver over the given engine.
func NewResolver(engine BulkSearcher) *Resolver {
	return &Resolver{engine: engine}
}

// ResolveTitles resolves each title to its single best book match,
// preserving input order. A title with no match contributes nothing; the
// result may be shorter than the input. Only hc-sourced titles are
// resolvable today: any other source yields an empty set with no error.
func (r *Resolver) ResolveTitles(ctx context.Context, source catalog.Source, titles []string) ([]catalog.Book, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	if source != catalog.SourceHardcover {
		return []catalog.Book{}, nil
	}

	queries := make([]search.ExactQuery, len(titles))
	for i, title := range titles {
		queries[i] = search.ExactQuery{Category: catalog.CategoryBooks, Q: title}
	}

	responses, err := r.engine.BulkExact(ctx, queries)
	if err != nil {
		return nil, err
	}

	books := make([]catalog.Book, 0, len(titles))
	for _, resp := range responses {
		if len(resp.Hits) == 0 {
			continue
		}
		if book, ok := resp.Hits[0].(catalog.Book); ok {
			books = append(books, book)
		}
	}
	return books, nil
}

// Truncate limits a resolved set for presentation without touching the
// original slice's contents.
func Truncate(books []catalog.Book, limit int) []catalog.Book {
	if limit < 0 || limit >= len(books) {
		return books
	}
	return books[:limit]
}
