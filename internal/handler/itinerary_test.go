package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/filestore"
	"github.com/HaruLab/travel-planning/internal/handler"
)

// mockDocumentStore is a test double for handler.DocumentStore.
// Set only the method fields your test needs.
type mockDocumentStore struct {
	read  func() (domain.Document, error)
	write func(doc domain.Document) error
}

func (m *mockDocumentStore) Read() (domain.Document, error) { return m.read() }
func (m *mockDocumentStore) Write(doc domain.Document) error {
	return m.write(doc)
}

// compile-time check: mockDocumentStore must satisfy handler.DocumentStore.
var _ handler.DocumentStore = (*mockDocumentStore)(nil)

// newHTTPHandler wires a Server with the given store into a chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(docs handler.DocumentStore) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(docs, nil).Register(r)
	return r
}

// ---- GET /api/itinerary -----------------------------------------------------

func TestGetItinerary_EmptyStoreServesEmptyObject(t *testing.T) {
	docs := &mockDocumentStore{read: func() (domain.Document, error) {
		return domain.Document{}, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(docs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestGetItinerary_ServesDocument(t *testing.T) {
	docs := &mockDocumentStore{read: func() (domain.Document, error) {
		return domain.DocumentFrom(domain.Trip{
			Title:      "旅",
			Date:       "2026年1月",
			Activities: []domain.Activity{{ID: "a1", Kind: domain.KindTrain, Title: "はやぶさ", Origin: "東京", StartTime: "08:20", EndTime: "11:25"}},
		}), nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(docs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var doc domain.Document
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	require.NotNil(t, doc.Items)
	assert.Equal(t, "旅", *doc.Title)
	assert.Equal(t, "a1", (*doc.Items)[0].ID)
}

func TestGetItinerary_ReadFailureIs500(t *testing.T) {
	docs := &mockDocumentStore{read: func() (domain.Document, error) {
		return domain.Document{}, errors.New("corrupt data file")
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(docs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

// ---- POST /api/itinerary ----------------------------------------------------

func TestPostItinerary_ReplacesDocument(t *testing.T) {
	var written domain.Document
	docs := &mockDocumentStore{write: func(doc domain.Document) error {
		written = doc
		return nil
	}}

	body := `{"title":"新しい旅","date":"2026年3月","items":[{"id":"a1","type":"food","title":"のっけ丼","from":"青森魚菜センター","startTime":"12:00","endTime":"13:00"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(docs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, written.Title)
	assert.Equal(t, "新しい旅", *written.Title)
	require.NotNil(t, written.Items)
	assert.Equal(t, domain.KindFood, (*written.Items)[0].Kind)
}

func TestPostItinerary_MalformedBodyIs400(t *testing.T) {
	called := false
	docs := &mockDocumentStore{write: func(domain.Document) error {
		called = true
		return nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(`{"items": [`))
	rec := httptest.NewRecorder()
	newHTTPHandler(docs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called, "nothing must be written for a malformed body")
}

func TestPostItinerary_WriteFailureIs500(t *testing.T) {
	docs := &mockDocumentStore{write: func(domain.Document) error {
		return errors.New("disk full")
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(docs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- end to end over a real file store --------------------------------------

func TestItinerary_PostThenGetRoundTrip(t *testing.T) {
	fs := filestore.New(filepath.Join(t.TempDir(), "itinerary.json"))
	h := newHTTPHandler(fs)

	body := `{"title":"往復","date":"2026年1月","items":[{"id":"a1","type":"walk","title":"散歩","from":"弘前公園","startTime":"09:00","endTime":"10:00"}]}`
	post := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(body))
	postRec := httptest.NewRecorder()
	h.ServeHTTP(postRec, post)
	require.Equal(t, http.StatusOK, postRec.Code)

	get := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, get)
	require.Equal(t, http.StatusOK, getRec.Code)

	var doc domain.Document
	require.NoError(t, json.NewDecoder(getRec.Body).Decode(&doc))
	assert.Equal(t, "往復", *doc.Title)
	require.NotNil(t, doc.Items)
	assert.Equal(t, "散歩", (*doc.Items)[0].Title)
}

// ---- healthz ----------------------------------------------------------------

func TestGetHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockDocumentStore{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetOpenAPI(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockDocumentStore{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/itinerary")
}
