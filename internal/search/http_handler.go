package search

import (
	"context"
	"net/http"
	"strconv"

	"shelvd/internal/catalog"
	"shelvd/internal/httpx"
)

// QueryRunner is the engine surface the HTTP handler needs.
type QueryRunner interface {
	Search(ctx context.Context, q Query) (Response, error)
}

// HTTPHandler serves one-shot searches. Long-lived search sessions go
// through the WebSocket controller instead.
type HTTPHandler struct {
	engine QueryRunner
}

// NewHTTPHandler creates a new search handler.
func NewHTTPHandler(engine QueryRunner) *HTTPHandler {
	return &HTTPHandler{engine: engine}
}

// Search handles GET /v1/search?q=...&type=...&page=...
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	category := catalog.CategoryBooks
	if v := r.URL.Query().Get("type"); v != "" {
		category = catalog.Category(v)
		if !category.Valid() {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "unknown search type", nil)
			return
		}
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "page must be a positive integer", nil)
			return
		}
		page = p
	}

	resp, err := h.engine.Search(r.Context(), Query{Q: q, Page: page, Category: category})
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Search provider unavailable", nil)
		return
	}
	httpx.JSONSuccess(w, r, resp, map[string]interface{}{"maxPage": resp.MaxPage()})
}
