package collection

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shelvd/internal/catalog"
	"shelvd/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Overview handles GET /v1/collections. Anonymous callers see core lists
// only; signed-in callers get their own lists alongside.
func (h *HTTPHandler) Overview(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.Overview(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONResults(w, map[string]any{"lists": lists})
}

// Get handles GET /v1/collections/{key}. The optional limit query param
// truncates the materialized books for presentation; limit=0 skips
// materialization and returns metadata only.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	limit := -1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	sc, err := h.svc.Get(r.Context(), key, limit)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Collection not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONResults(w, sc)
}

type createReq struct {
	Name string           `json:"name"`
	Type catalog.ListType `json:"type"`
}

// Create handles POST /v1/collections.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if req.Type == "" {
		req.Type = catalog.ListTypeCreated
	}

	rec, err := h.svc.Create(r.Context(), userID, req.Name, req.Type)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	httpx.JSONSuccessCreated(w, r, rec)
}

type updateReq struct {
	Name   *string  `json:"name,omitempty"`
	Titles []string `json:"titles,omitempty"`
}

// Update handles PATCH /v1/collections/{key}.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	rec, err := h.svc.Update(r.Context(), r.PathValue("key"), userID, req.Name, req.Titles)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Collection not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Not your collection", nil)
		default:
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		}
		return
	}
	httpx.JSONSuccess(w, r, rec, nil)
}

// Delete handles DELETE /v1/collections/{key}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	if err := h.svc.Delete(r.Context(), r.PathValue("key"), userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Collection not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Not your collection", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccessNoContent(w)
}
