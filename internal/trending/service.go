package trending

import (
	"context"
	"sync"
	"time"

	"shelvd/internal/adapter"
	"shelvd/internal/catalog"
)

// DefaultTTL is how long a fetched feed is served from memory before the
// next request refetches it.
const DefaultTTL = 5 * time.Minute

// Fetcher is the feed client surface the service needs.
type Fetcher interface {
	Trending(ctx context.Context) (Feed, error)
	Lists(ctx context.Context) (Feed, error)
}

// Snapshot is a parsed feed: canonical records grouped by category. Total
// is the feed's own count, which may exceed the number of parseable
// documents.
type Snapshot struct {
	Total   int                                     `json:"total"`
	Results map[catalog.Category][]catalog.Artifact `json:"results"`
}

type cachedFeed struct {
	snap      Snapshot
	fetchedAt time.Time
}

// Service parses feeds into canonical records and caches the result. Feeds
// are static documents that change rarely, so a short TTL cache keeps the
// handler from hammering the CDN.
type Service struct {
	client Fetcher
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cachedFeed
}

// NewService creates a feed service with the default cache TTL.
func NewService(client Fetcher) *Service {
	return &Service{
		client: client,
		ttl:    DefaultTTL,
		cache:  make(map[string]cachedFeed),
	}
}

// Trending returns the parsed trending-books feed.
func (s *Service) Trending(ctx context.Context) (Snapshot, error) {
	return s.cached(ctx, "trending", s.client.Trending)
}

// Lists returns the parsed featured-lists feed.
func (s *Service) Lists(ctx context.Context) (Snapshot, error) {
	return s.cached(ctx, "lists", s.client.Lists)
}

func (s *Service) cached(ctx context.Context, key string, fetch func(context.Context) (Feed, error)) (Snapshot, error) {
	s.mu.Lock()
	entry, ok := s.cache[key]
	s.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < s.ttl {
		return entry.snap, nil
	}

	feed, err := fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := parseFeed(feed)

	s.mu.Lock()
	s.cache[key] = cachedFeed{snap: snap, fetchedAt: time.Now()}
	s.mu.Unlock()
	return snap, nil
}

// parseFeed maps raw feed documents through the adapter. Documents that
// fail to parse, and categories the adapter has no mapping for, are
// dropped rather than failing the whole feed.
func parseFeed(feed Feed) Snapshot {
	snap := Snapshot{
		Total:   feed.Total,
		Results: make(map[catalog.Category][]catalog.Artifact, len(feed.Results)),
	}
	for category, docs := range feed.Results {
		parsed := make([]catalog.Artifact, 0, len(docs))
		for _, doc := range docs {
			artifact, err := adapter.ParseDocument(category, doc)
			if err != nil {
				continue
			}
			parsed = append(parsed, artifact)
		}
		snap.Results[category] = parsed
	}
	return snap
}
