// Package state owns a search session: the live query text, the submitted
// query snapshot, the fetch lifecycle flags, and the derived relations a
// deferred-search UI needs. State is held in one explicit struct and
// changes are published to subscribers; there are no ambient singletons.
package state

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"shelvd/internal/catalog"
	"shelvd/internal/search"
)

// Fetcher is the slice of the search engine a controller needs.
type Fetcher interface {
	Search(ctx context.Context, q search.Query) (search.Response, error)
}

// Config sets a controller's reset target.
type Config struct {
	DefaultQuery    string
	DefaultCategory catalog.Category
}

// Snapshot is an immutable view of the session, published on every change.
type Snapshot struct {
	Query     string             `json:"query"`
	Category  catalog.Category   `json:"category"`
	Submitted search.Query       `json:"submitted"`
	Loading   bool               `json:"loading"`
	Fetching  bool               `json:"fetching"`
	Success   bool               `json:"success"`
	Found     int                `json:"found"`
	OutOf     int                `json:"outOf"`
	Hits      []catalog.Artifact `json:"hits"`
	Error     string             `json:"error,omitempty"`
}

// IsSameQuery reports whether the live text equals the submitted query.
func (s Snapshot) IsSameQuery() bool { return s.Submitted.Q == s.Query }

// IsSimilarQuery reports whether the live text merely narrows the submitted
// query: results for the submitted query are still relevant while the user
// keeps typing the same prefix.
func (s Snapshot) IsSimilarQuery() bool { return strings.HasPrefix(s.Query, s.Submitted.Q) }

// IsEmptyQuery reports whether nothing has been submitted.
func (s Snapshot) IsEmptyQuery() bool { return len(s.Submitted.Q) == 0 }

// IsNotFound reports a definitively empty outcome: not loading, not
// successful, nothing matched.
func (s Snapshot) IsNotFound() bool { return !s.Loading && !s.Success && s.Found < 1 }

// QueryString renders the submitted query in shareable form
// ("?q=...&type=..."), or "" when the query is empty.
func (s Snapshot) QueryString() string {
	if s.IsEmptyQuery() {
		return ""
	}
	v := url.Values{}
	v.Set("q", s.Submitted.Q)
	v.Set("type", string(s.Submitted.Category))
	return "?" + v.Encode()
}

// Controller is a single search session. All writes go through its own
// methods under one mutex; fetches run asynchronously and only the most
// recent submission's result is ever applied.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	fetcher Fetcher

	query     string
	category  catalog.Category
	submitted search.Query

	gen      uint64
	loading  bool
	fetching bool
	success  bool
	result   search.Response
	lastErr  error

	subs   map[int]chan Snapshot
	nextID int
}

// NewController builds a session controller with the given defaults already
// applied.
func NewController(fetcher Fetcher, cfg Config) *Controller {
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = catalog.CategoryBooks
	}
	return &Controller{
		cfg:      cfg,
		fetcher:  fetcher,
		query:    cfg.DefaultQuery,
		category: cfg.DefaultCategory,
		submitted: search.Query{
			Q:        cfg.DefaultQuery,
			Page:     1,
			Category: cfg.DefaultCategory,
		},
		subs: make(map[int]chan Snapshot),
	}
}

// Subscribe registers for snapshot notifications. The returned cancel
// function must be called when done. Slow subscribers are not waited on:
// a pending stale snapshot is replaced by the newest one.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan Snapshot, 1)
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetQuery updates the live query text. No fetch is triggered; submission
// is explicit.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// SetCategory updates the live category.
func (c *Controller) SetCategory(cat catalog.Category) {
	c.mu.Lock()
	c.category = cat
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// SubmitSearch snapshots the live query and category into the submitted
// query, resets the page to 1, and starts a fetch.
func (c *Controller) SubmitSearch(ctx context.Context) {
	c.mu.Lock()
	c.submitted = search.Query{Q: c.query, Page: 1, Category: c.category}
	c.startFetchLocked(ctx, true)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// SetPage moves the submitted query to another page and refetches. The live
// text is untouched.
func (c *Controller) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.submitted.Page = page
	c.startFetchLocked(ctx, false)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// ResetSearch restores the configured defaults and discards any result.
// In-flight fetches are abandoned by the generation guard.
func (c *Controller) ResetSearch() {
	c.mu.Lock()
	c.gen++
	c.query = c.cfg.DefaultQuery
	c.category = c.cfg.DefaultCategory
	c.submitted = search.Query{Q: c.cfg.DefaultQuery, Page: 1, Category: c.cfg.DefaultCategory}
	c.loading = false
	c.fetching = false
	c.success = false
	c.result = search.Response{}
	c.lastErr = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// startFetchLocked bumps the generation and launches the fetch goroutine.
// newSubmission marks a fresh submission (full loading state) as opposed to
// a page refetch of the same submission.
func (c *Controller) startFetchLocked(ctx context.Context, newSubmission bool) {
	c.gen++
	gen := c.gen
	q := c.submitted
	c.fetching = true
	if newSubmission {
		c.loading = true
		c.success = false
		c.result = search.Response{}
	}
	c.lastErr = nil

	go func() {
		resp, err := c.fetcher.Search(ctx, q)

		c.mu.Lock()
		if gen != c.gen {
			// A newer submission superseded this fetch; drop it.
			c.mu.Unlock()
			return
		}
		c.loading = false
		c.fetching = false
		if err != nil {
			c.success = false
			c.lastErr = err
		} else {
			c.success = true
			c.result = resp
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.publish(snap)
	}()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Query:     c.query,
		Category:  c.category,
		Submitted: c.submitted,
		Loading:   c.loading,
		Fetching:  c.fetching,
		Success:   c.success,
		Found:     c.result.Found,
		OutOf:     c.result.OutOf,
		Hits:      c.result.Hits,
	}
	if c.lastErr != nil {
		snap.Error = c.lastErr.Error()
	}
	return snap
}

// publish delivers a snapshot to every subscriber, replacing any stale
// undelivered one.
func (c *Controller) publish(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
