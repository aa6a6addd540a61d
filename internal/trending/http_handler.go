package trending

import (
	"net/http"

	"shelvd/internal/httpx"
)

// HTTPHandler serves the read-only feed endpoints.
type HTTPHandler struct {
	svc *Service
}

// NewHTTPHandler creates a new feed handler.
func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Trending handles GET /v1/trending.
func (h *HTTPHandler) Trending(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Trending(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Trending feed unavailable", nil)
		return
	}
	httpx.JSONSuccess(w, r, snap, nil)
}

// Lists handles GET /v1/trending/lists.
func (h *HTTPHandler) Lists(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Lists(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "List feed unavailable", nil)
		return
	}
	httpx.JSONSuccess(w, r, snap, nil)
}
