// Package typesense is the HTTP client for the book search index's
// multi-search endpoint. It speaks the wire contract only; mapping hit
// documents into canonical records is the adapter's job.
package typesense

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const apiKeyHeader = "X-TYPESENSE-API-KEY"

// SearchParams is one sub-search in a multi-search request.
type SearchParams struct {
	Collection           string `json:"collection"`
	Q                    string `json:"q"`
	QueryBy              string `json:"query_by"`
	QueryByWeights       string `json:"query_by_weights,omitempty"`
	SortBy               string `json:"sort_by,omitempty"`
	Page                 int    `json:"page,omitempty"`
	PerPage              int    `json:"per_page,omitempty"`
	PrioritizeExactMatch bool   `json:"prioritize_exact_match,omitempty"`
}

// Hit is one matching document. Document stays raw; the caller decodes it
// per category.
type Hit struct {
	Document json.RawMessage `json:"document"`
}

// SearchResult is the provider's answer to one sub-search.
type SearchResult struct {
	Found int   `json:"found"`
	OutOf int   `json:"out_of"`
	Page  int   `json:"page"`
	Hits  []Hit `json:"hits"`
}

type multiSearchRequest struct {
	Searches []SearchParams `json:"searches"`
}

type multiSearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Client issues multi-search requests. Searches are not retried: a
// superseded or failed search is the caller's problem to resubmit, and the
// caching layer above deduplicates identical ones.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	metrics    *Metrics
}

// NewClient builds a client for the given index endpoint. rps bounds the
// request rate against the provider; non-positive values are floored to
// one request per second.
func NewClient(baseURL, apiKey string, rps int, metrics *Metrics) *Client {
	if rps < 1 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		metrics: metrics,
	}
}

// MultiSearch posts the given sub-searches as one request. The provider
// returns exactly one result per sub-search in submission order; a response
// that breaks that correlation is rejected here so callers can rely on
// index positions.
func (c *Client) MultiSearch(ctx context.Context, searches []SearchParams) ([]SearchResult, error) {
	if len(searches) == 0 {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(multiSearchRequest{Searches: searches})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/multi_search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		c.metrics.IncError("transport")
		return nil, fmt.Errorf("multi_search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncError(statusLabel(resp.StatusCode))
		return nil, fmt.Errorf("multi_search: unexpected status code: %d", resp.StatusCode)
	}

	var out multiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.metrics.IncError("decode")
		return nil, fmt.Errorf("multi_search: decode: %w", err)
	}

	if len(out.Results) != len(searches) {
		c.metrics.IncError("correlation")
		return nil, fmt.Errorf("multi_search: got %d results for %d searches", len(out.Results), len(searches))
	}

	c.metrics.IncRequest(len(searches))
	return out.Results, nil
}

func statusLabel(code int) string {
	switch {
	case code == http.StatusTooManyRequests:
		return "rate_limited"
	case code >= 500:
		return "server"
	case code >= 400:
		return "client"
	default:
		return "other"
	}
}
