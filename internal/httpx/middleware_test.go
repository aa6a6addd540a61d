package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelvd/internal/httpx"
	"shelvd/internal/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		handler := httpx.CORSMiddleware([]string{"*"})(okHandler())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		r.Header.Set("Origin", "https://shelvd.example.com")
		handler.ServeHTTP(w, r)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("listed origin is echoed with credentials", func(t *testing.T) {
		handler := httpx.CORSMiddleware([]string{"https://shelvd.example.com"})(okHandler())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		r.Header.Set("Origin", "https://shelvd.example.com")
		handler.ServeHTTP(w, r)

		assert.Equal(t, "https://shelvd.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		handler := httpx.CORSMiddleware([]string{"https://shelvd.example.com"})(okHandler())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		r.Header.Set("Origin", "https://evil.example.com")
		handler.ServeHTTP(w, r)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		handler := httpx.CORSMiddleware([]string{"*"})(okHandler())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/v1/collections", nil)
		r.Header.Set("Origin", "https://shelvd.example.com")
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := httpx.SecurityHeadersMiddleware(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/search", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := httpx.RequestSizeLimitMiddleware(16)(okHandler())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/collections",
		strings.NewReader(`{"name":"this body is well past sixteen bytes"}`))
	handler.ServeHTTP(w, r)

	resp := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	assert.Equal(t, false, resp.Body["success"], "oversized bodies get the JSON error envelope")
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpx.RequestIDFrom(r)
	})
	handler := httpx.RequestIDMiddleware(next)

	t.Run("valid inbound id honored", func(t *testing.T) {
		id := uuid.New().String()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		r.Header.Set("X-Request-Id", id)
		handler.ServeHTTP(w, r)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, w.Header().Get("X-Request-Id"))
	})

	t.Run("non-uuid inbound id replaced", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		r.Header.Set("X-Request-Id", "not-a-uuid; rm -rf")
		handler.ServeHTTP(w, r)

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}
