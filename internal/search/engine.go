// Package search builds provider search requests from normalized queries,
// executes them, and decodes the hits into canonical records.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"shelvd/internal/adapter"
	"shelvd/internal/catalog"
	"shelvd/internal/platform/typesense"
)

const defaultCacheSize = 256

// Searcher is the slice of the provider client the engine needs.
type Searcher interface {
	MultiSearch(ctx context.Context, searches []typesense.SearchParams) ([]typesense.SearchResult, error)
}

// Query is a normalized search request.
type Query struct {
	Q        string           `json:"q"`
	Page     int              `json:"page"`
	Category catalog.Category `json:"category"`
}

// ExactQuery is one entry of a bulk exact-match lookup.
type ExactQuery struct {
	Category catalog.Category `json:"category"`
	Q        string           `json:"q"`
}

// Response is the classified outcome of one sub-search. Hits holds only the
// documents that decoded into valid canonical records; Found still reports
// the provider's raw match count.
type Response struct {
	Query   Query              `json:"query"`
	Found   int                `json:"found"`
	OutOf   int                `json:"outOf"`
	Page    int                `json:"page"`
	PerPage int                `json:"perPage"`
	Hits    []catalog.Artifact `json:"hits"`
}

// IsEmpty reports a definitively empty result: the request completed and
// the provider matched nothing.
func (r Response) IsEmpty() bool { return r.Found < 1 }

// MaxPage is the last page number at the response's per-page size, derived
// from the provider's out_of total.
func (r Response) MaxPage() int {
	if r.PerPage <= 0 || r.OutOf <= 0 {
		return 1
	}
	return (r.OutOf + r.PerPage - 1) / r.PerPage
}

// Engine translates normalized queries into provider requests using
// per-category profiles and caches responses keyed by the exact request
// parameters, so rapid resubmission of an identical query is served without
// a second round trip.
type Engine struct {
	client   Searcher
	profiles map[catalog.Category]Profile
	cache    *lru.Cache[string, Response]
}

// Option customizes an Engine.
type Option func(*Engine)

// WithProfile overrides the parameter profile for one category.
func WithProfile(c catalog.Category, p Profile) Option {
	return func(e *Engine) { e.profiles[c] = p }
}

// NewEngine builds an engine over the given provider client.
func NewEngine(client Searcher, opts ...Option) *Engine {
	e := &Engine{
		client:   client,
		profiles: DefaultProfiles(),
	}
	for _, opt := range opts {
		opt(e)
	}
	// Cache creation only fails on a non-positive size.
	e.cache, _ = lru.New[string, Response](defaultCacheSize)
	return e
}

// BuildParams renders a normalized query into provider parameters using the
// category's profile.
func (e *Engine) BuildParams(q Query) (typesense.SearchParams, error) {
	p, ok := e.profiles[q.Category]
	if !ok {
		return typesense.SearchParams{}, fmt.Errorf("search: no profile for category %q", q.Category)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return typesense.SearchParams{
		Collection:     p.Collection,
		Q:              q.Q,
		QueryBy:        p.QueryBy,
		QueryByWeights: p.Weights,
		SortBy:         p.SortBy,
		Page:           page,
		PerPage:        p.PerPage,
	}, nil
}

// buildExactParams constrains a lookup to its single best match. Book
// lookups force the usage-count sort so the most-read edition wins ties,
// whatever the configured books profile says.
func (e *Engine) buildExactParams(q ExactQuery) (typesense.SearchParams, error) {
	params, err := e.BuildParams(Query{Q: q.Q, Page: 1, Category: q.Category})
	if err != nil {
		return typesense.SearchParams{}, err
	}
	params.PerPage = 1
	params.PrioritizeExactMatch = true
	if q.Category == catalog.CategoryBooks {
		params.SortBy = exactBooksSort
	}
	return params, nil
}

// Search executes one normalized query and decodes the hits. Hits whose
// documents fail to map to a valid canonical record are dropped; the
// provider's match count is reported as-is.
func (e *Engine) Search(ctx context.Context, q Query) (Response, error) {
	params, err := e.BuildParams(q)
	if err != nil {
		return Response{}, err
	}

	key := cacheKey(params)
	if cached, ok := e.cache.Get(key); ok {
		return cached, nil
	}

	results, err := e.client.MultiSearch(ctx, []typesense.SearchParams{params})
	if err != nil {
		return Response{}, err
	}

	resp := e.classify(q, results[0], params.PerPage)
	e.cache.Add(key, resp)
	return resp, nil
}

// Exact returns the single best match for a known title or slug, or
// catalog.ErrNotFound when the provider has nothing.
func (e *Engine) Exact(ctx context.Context, category catalog.Category, q string) (catalog.Artifact, error) {
	responses, err := e.BulkExact(ctx, []ExactQuery{{Category: category, Q: q}})
	if err != nil {
		return nil, err
	}
	if len(responses[0].Hits) == 0 {
		return nil, catalog.ErrNotFound
	}
	return responses[0].Hits[0], nil
}

// BulkExact issues the given lookups as one multi-search request. The
// returned slice has exactly one response per input query, in input order;
// that positional correlation is what lets a list's bare titles be resolved
// in a single round trip.
func (e *Engine) BulkExact(ctx context.Context, queries []ExactQuery) ([]Response, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	searches := make([]typesense.SearchParams, len(queries))
	for i, q := range queries {
		params, err := e.buildExactParams(q)
		if err != nil {
			return nil, err
		}
		searches[i] = params
	}

	results, err := e.client.MultiSearch(ctx, searches)
	if err != nil {
		return nil, err
	}

	responses := make([]Response, len(results))
	for i, res := range results {
		responses[i] = e.classify(Query{Q: queries[i].Q, Page: 1, Category: queries[i].Category}, res, searches[i].PerPage)
	}
	return responses, nil
}

// classify decodes a provider result's hits into canonical records.
func (e *Engine) classify(q Query, res typesense.SearchResult, perPage int) Response {
	hits := make([]catalog.Artifact, 0, len(res.Hits))
	for _, h := range res.Hits {
		art, err := adapter.ParseDocument(q.Category, h.Document)
		if err != nil {
			// Not-found and unsupported-category outcomes alike: the
			// hit contributes nothing.
			continue
		}
		hits = append(hits, art)
	}
	return Response{
		Query:   q,
		Found:   res.Found,
		OutOf:   res.OutOf,
		Page:    res.Page,
		PerPage: perPage,
		Hits:    hits,
	}
}

func cacheKey(p typesense.SearchParams) string {
	b, _ := json.Marshal(p)
	return string(b)
}
