package collection

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelvd/internal/catalog"
	"shelvd/internal/httpx"
)

func newHandler(t *testing.T, known map[string]catalog.Book) (*HTTPHandler, *MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo, NewResolver(&fakeBulkSearcher{known: known}))
	return NewHTTPHandler(svc), mockRepo
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID, "USER"))
}

func testRecord(key, owner string, listType catalog.ListType, titles ...string) Record {
	return Record{
		Key:       key,
		Name:      "My List",
		Source:    catalog.SourceHardcover,
		Type:      listType,
		OwnerKey:  owner,
		Titles:    titles,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestHTTPHandler_Overview(t *testing.T) {
	handler, mockRepo := newHandler(t, nil)

	mockRepo.EXPECT().ListForOwner(gomock.Any(), "u1").Return([]Record{
		testRecord("core-1", "", catalog.ListTypeCore),
		testRecord("mine-1", "u1", catalog.ListTypeCreated),
	}, nil)

	w := httptest.NewRecorder()
	r := authed(httptest.NewRequest(http.MethodGet, "/v1/collections", nil), "u1")
	handler.Overview(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results struct {
			Lists Lists `json:"lists"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results.Lists.Core, 1)
	require.Len(t, body.Results.Lists.User, 1)
	assert.Equal(t, "core-1", body.Results.Lists.Core[0].Key)
	assert.Empty(t, body.Results.Lists.Core[0].Books, "overview never materializes books")
}

func TestHTTPHandler_Get(t *testing.T) {
	known := map[string]catalog.Book{
		"Dune":     testBook("11", "Dune"),
		"Piranesi": testBook("12", "Piranesi"),
	}

	t.Run("materializes books in order", func(t *testing.T) {
		handler, mockRepo := newHandler(t, known)
		mockRepo.EXPECT().Get(gomock.Any(), "c1").
			Return(testRecord("c1", "u1", catalog.ListTypeCreated, "Dune", "Missing", "Piranesi"), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/collections/c1", nil)
		r.SetPathValue("key", "c1")
		handler.Get(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Results SingleCollection `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Results.Books, 2)
		assert.Equal(t, "Dune", body.Results.Books[0].Title)
		assert.Equal(t, "Piranesi", body.Results.Books[1].Title)
	})

	t.Run("limit truncates", func(t *testing.T) {
		handler, mockRepo := newHandler(t, known)
		mockRepo.EXPECT().Get(gomock.Any(), "c1").
			Return(testRecord("c1", "u1", catalog.ListTypeCreated, "Dune", "Piranesi"), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/collections/c1?limit=1", nil)
		r.SetPathValue("key", "c1")
		handler.Get(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Results SingleCollection `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Results.Books, 1)
	})

	t.Run("limit zero skips materialization", func(t *testing.T) {
		handler, mockRepo := newHandler(t, known)
		mockRepo.EXPECT().Get(gomock.Any(), "c1").
			Return(testRecord("c1", "u1", catalog.ListTypeCreated, "Dune"), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/collections/c1?limit=0", nil)
		r.SetPathValue("key", "c1")
		handler.Get(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Results SingleCollection `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Empty(t, body.Results.Books)
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockRepo := newHandler(t, known)
		mockRepo.EXPECT().Get(gomock.Any(), "nope").Return(Record{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/collections/nope", nil)
		r.SetPathValue("key", "nope")
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		handler, _ := newHandler(t, known)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/collections/c1?limit=-3", nil)
		r.SetPathValue("key", "c1")
		handler.Get(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("unauthorized without identity", func(t *testing.T) {
		handler, _ := newHandler(t, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/collections", bytes.NewBufferString(`{"name":"Favorites"}`))
		handler.Create(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		handler, mockRepo := newHandler(t, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodPost, "/v1/collections", bytes.NewBufferString(`{"name":"Favorites"}`)), "u1")
		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("core type rejected", func(t *testing.T) {
		handler, _ := newHandler(t, nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodPost, "/v1/collections", bytes.NewBufferString(`{"name":"Hijack","type":"core"}`)), "u1")
		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		handler, _ := newHandler(t, nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodPost, "/v1/collections", bytes.NewBufferString(`{"name":"   "}`)), "u1")
		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("owner can rename", func(t *testing.T) {
		handler, mockRepo := newHandler(t, nil)
		mockRepo.EXPECT().Get(gomock.Any(), "c1").
			Return(testRecord("c1", "u1", catalog.ListTypeCreated), nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodPatch, "/v1/collections/c1", bytes.NewBufferString(`{"name":"Renamed"}`)), "u1")
		r.SetPathValue("key", "c1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		handler, mockRepo := newHandler(t, nil)
		mockRepo.EXPECT().Get(gomock.Any(), "c1").
			Return(testRecord("c1", "u1", catalog.ListTypeCreated), nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodPatch, "/v1/collections/c1", bytes.NewBufferString(`{"name":"Stolen"}`)), "u2")
		r.SetPathValue("key", "c1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("core lists immutable", func(t *testing.T) {
		handler, mockRepo := newHandler(t, nil)
		mockRepo.EXPECT().Get(gomock.Any(), "core-1").
			Return(testRecord("core-1", "", catalog.ListTypeCore), nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodPatch, "/v1/collections/core-1", bytes.NewBufferString(`{"name":"Hijacked"}`)), "u1")
		r.SetPathValue("key", "core-1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockRepo := newHandler(t, nil)
		mockRepo.EXPECT().Get(gomock.Any(), "c1").
			Return(testRecord("c1", "u1", catalog.ListTypeCreated), nil)
		mockRepo.EXPECT().Delete(gomock.Any(), "c1").Return(true, nil)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodDelete, "/v1/collections/c1", nil), "u1")
		r.SetPathValue("key", "c1")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockRepo := newHandler(t, nil)
		mockRepo.EXPECT().Get(gomock.Any(), "nope").Return(Record{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodDelete, "/v1/collections/nope", nil), "u1")
		r.SetPathValue("key", "nope")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
