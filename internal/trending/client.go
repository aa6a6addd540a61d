// Package trending fetches the static trending and featured-list feeds.
// Feeds are whole documents, not paginated endpoints: one GET returns
// everything the feed has.
package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shelvd/internal/catalog"
)

const (
	trendingPath = "/book-trending.json"
	listPath     = "/book-list.json"
)

// Feed is the raw wire shape of a feed document: a total count plus raw
// documents keyed by category. Documents stay raw here; the service maps
// them into canonical records.
type Feed struct {
	Total   int                                    `json:"total"`
	Results map[catalog.Category][]json.RawMessage `json:"results"`
}

// Client fetches feed documents over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a feed client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Trending fetches the trending-books feed.
func (c *Client) Trending(ctx context.Context) (Feed, error) {
	return c.fetch(ctx, trendingPath)
}

// Lists fetches the featured-lists feed.
func (c *Client) Lists(ctx context.Context) (Feed, error) {
	return c.fetch(ctx, listPath)
}

func (c *Client) fetch(ctx context.Context, path string) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Feed{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Feed{}, fmt.Errorf("fetch %s: unexpected status code: %d", path, resp.StatusCode)
	}

	var feed Feed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return Feed{}, fmt.Errorf("fetch %s: decode: %w", path, err)
	}
	return feed, nil
}
