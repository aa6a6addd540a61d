package typesense

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://search.example.com"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(testBaseURL, "test-key", 100, nil)
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestMultiSearch(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/multi_search",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "test-key", req.Header.Get(apiKeyHeader))

			var body multiSearchRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Len(t, body.Searches, 2)
			assert.Equal(t, "books", body.Searches[0].Collection)
			assert.Equal(t, "dune", body.Searches[0].Q)

			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"results": []map[string]any{
					{"found": 1, "out_of": 900, "page": 1, "hits": []map[string]any{
						{"document": map[string]any{"id": "11", "title": "Dune"}},
					}},
					{"found": 0, "out_of": 900, "page": 1, "hits": []map[string]any{}},
				},
			})
		})

	results, err := c.MultiSearch(context.Background(), []SearchParams{
		{Collection: "books", Q: "dune", QueryBy: "title", Page: 1},
		{Collection: "books", Q: "zzzz", QueryBy: "title", Page: 1},
	})
	require.NoError(t, err)
	require.Len(t, results, 2, "one result per sub-search, in order")

	assert.Equal(t, 1, results[0].Found)
	assert.Equal(t, 900, results[0].OutOf)
	require.Len(t, results[0].Hits, 1)
	assert.JSONEq(t, `{"id": "11", "title": "Dune"}`, string(results[0].Hits[0].Document))

	assert.Equal(t, 0, results[1].Found)
	assert.Empty(t, results[1].Hits)
}

func TestNewClientFloorsRate(t *testing.T) {
	c := NewClient(testBaseURL, "test-key", 0, nil)
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/multi_search",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"results": []map[string]any{{"found": 0, "out_of": 0, "page": 1, "hits": []map[string]any{}}},
		}))

	results, err := c.MultiSearch(context.Background(), []SearchParams{{Collection: "books", Q: "x", QueryBy: "title"}})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMultiSearchEmptyInput(t *testing.T) {
	c := newTestClient(t)

	results, err := c.MultiSearch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, httpmock.GetTotalCallCount(), "no request issued for empty input")
}

func TestMultiSearchErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t)
		httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/multi_search",
			httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"))

		_, err := c.MultiSearch(context.Background(), []SearchParams{{Collection: "books", Q: "x", QueryBy: "title"}})
		assert.Error(t, err)
	})

	t.Run("result correlation mismatch rejected", func(t *testing.T) {
		c := newTestClient(t)
		httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/multi_search",
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"results": []map[string]any{}}))

		_, err := c.MultiSearch(context.Background(), []SearchParams{{Collection: "books", Q: "x", QueryBy: "title"}})
		assert.ErrorContains(t, err, "results")
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestClient(t)
		httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/multi_search",
			httpmock.NewStringResponder(http.StatusOK, "{"))

		_, err := c.MultiSearch(context.Background(), []SearchParams{{Collection: "books", Q: "x", QueryBy: "title"}})
		assert.ErrorContains(t, err, "decode")
	})
}
