// favorites_test.go — Tests for the favorites CRUD endpoints against an
// in-memory store.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/database"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/models"
)

// memStore is an in-memory FavoriteStore. Lookup honors both identifier
// spellings in the stored details blob, like the SQL queries do.
type memStore struct {
	records []models.Favorite
}

func (s *memStore) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	out := make([]models.Favorite, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memStore) FindFavoriteByIMDbID(ctx context.Context, imdbID string) (*models.Favorite, error) {
	for i := range s.records {
		if extractIMDbID(s.records[i].MovieDetails) == imdbID {
			f := s.records[i]
			return &f, nil
		}
	}
	return nil, database.ErrFavoriteNotFound
}

func (s *memStore) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	s.records = append(s.records, *f)
	return nil
}

func (s *memStore) DeleteFavorite(ctx context.Context, id string) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return database.ErrFavoriteNotFound
}

func doJSONRequest(h *Handler, method, target string, body string, params gin.Params, fn gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	fn(c)
	return w
}

const inceptionDetails = `{"movie_details": {"imdb_id": "tt1375666", "title": "Inception", "year": 2010}}`

func TestCreateFavorite_Idempotent(t *testing.T) {
	store := &memStore{}
	h := &Handler{Favorites: store}

	w := doJSONRequest(h, http.MethodPost, "/api/favorites", inceptionDetails, nil, h.CreateFavorite)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201", w.Code)
	}
	if len(store.records) != 1 {
		t.Fatalf("store holds %d records, want 1", len(store.records))
	}
	firstID := store.records[0].ID

	// Favoriting the same movie again returns the existing record.
	w = doJSONRequest(h, http.MethodPost, "/api/favorites", inceptionDetails, nil, h.CreateFavorite)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat create status = %d, want 200", w.Code)
	}
	if len(store.records) != 1 {
		t.Errorf("store holds %d records after repeat create, want 1", len(store.records))
	}

	var resp struct {
		Message  string          `json:"message"`
		Favorite models.Favorite `json:"favorite"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Message != "Movie is already in favorites" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Favorite.ID != firstID {
		t.Errorf("favorite id = %q, want the original %q", resp.Favorite.ID, firstID)
	}
}

// The alternate identifier spelling must be recognized for dedup too.
func TestCreateFavorite_AlternateSpelling(t *testing.T) {
	store := &memStore{}
	h := &Handler{Favorites: store}

	doJSONRequest(h, http.MethodPost, "/api/favorites",
		`{"movie_details": {"imdbID": "tt1375666", "Title": "Inception"}}`, nil, h.CreateFavorite)
	w := doJSONRequest(h, http.MethodPost, "/api/favorites", inceptionDetails, nil, h.CreateFavorite)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for the already-favorited movie", w.Code)
	}
	if len(store.records) != 1 {
		t.Errorf("store holds %d records, want 1", len(store.records))
	}
}

func TestCreateFavorite_MissingDetails(t *testing.T) {
	h := &Handler{Favorites: &memStore{}}

	w := doJSONRequest(h, http.MethodPost, "/api/favorites", `{}`, nil, h.CreateFavorite)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var resp models.ValidationErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if _, ok := resp.Messages["movie_details"]; !ok {
		t.Errorf("messages = %v, want a movie_details entry", resp.Messages)
	}
}

// Details without any recognizable identifier are stored anyway; the dedup
// check is simply skipped.
func TestCreateFavorite_NoIdentifier(t *testing.T) {
	store := &memStore{}
	h := &Handler{Favorites: store}

	w := doJSONRequest(h, http.MethodPost, "/api/favorites",
		`{"movie_details": {"title": "Untracked"}}`, nil, h.CreateFavorite)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if len(store.records) != 1 {
		t.Errorf("store holds %d records, want 1", len(store.records))
	}
}

func TestListFavorites(t *testing.T) {
	store := &memStore{records: []models.Favorite{
		{ID: "f1", MovieDetails: json.RawMessage(`{"imdb_id": "tt1", "title": "One"}`)},
		{ID: "f2", MovieDetails: json.RawMessage(`{"imdb_id": "tt2", "title": "Two"}`)},
	}}
	h := &Handler{Favorites: store}

	w := doJSONRequest(h, http.MethodGet, "/api/favorites", "", nil, h.ListFavorites)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.FavoritesListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("total = %d, len(data) = %d", resp.Total, len(resp.Data))
	}

	// The response carries the raw details blobs, not record wrappers.
	var first map[string]string
	json.Unmarshal(resp.Data[0], &first)
	if first["title"] != "One" {
		t.Errorf("first entry = %v", first)
	}
}

func TestCheckFavorite(t *testing.T) {
	store := &memStore{records: []models.Favorite{
		{ID: "f1", MovieDetails: json.RawMessage(`{"imdbID": "tt1375666"}`)},
	}}
	h := &Handler{Favorites: store}

	tests := []struct {
		name       string
		imdbID     string
		wantMarked bool
	}{
		{name: "favorited movie", imdbID: "tt1375666", wantMarked: true},
		{name: "unknown movie", imdbID: "tt0000001", wantMarked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSONRequest(h, http.MethodGet, "/api/favorites/check/"+tt.imdbID, "",
				gin.Params{{Key: "imdbId", Value: tt.imdbID}}, h.CheckFavorite)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var resp models.FavoriteCheckResponse
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp.IsFavorited != tt.wantMarked {
				t.Errorf("is_favorited = %v, want %v", resp.IsFavorited, tt.wantMarked)
			}
			if tt.wantMarked && (resp.FavoriteID == nil || *resp.FavoriteID != "f1") {
				t.Errorf("favorite_id = %v, want f1", resp.FavoriteID)
			}
		})
	}
}

func TestDeleteFavorite(t *testing.T) {
	store := &memStore{records: []models.Favorite{
		{ID: "f1", MovieDetails: json.RawMessage(`{"imdb_id": "tt1375666"}`)},
	}}
	h := &Handler{Favorites: store}

	w := doJSONRequest(h, http.MethodDelete, "/api/favorites/tt1375666", "",
		gin.Params{{Key: "imdbId", Value: "tt1375666"}}, h.DeleteFavorite)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(store.records) != 0 {
		t.Errorf("store holds %d records after delete, want 0", len(store.records))
	}
}

func TestDeleteFavorite_NotFound(t *testing.T) {
	h := &Handler{Favorites: &memStore{}}

	w := doJSONRequest(h, http.MethodDelete, "/api/favorites/tt0000001", "",
		gin.Params{{Key: "imdbId", Value: "tt0000001"}}, h.DeleteFavorite)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestToggleFavorite_RoundTrip(t *testing.T) {
	store := &memStore{}
	h := &Handler{Favorites: store}

	// First toggle adds.
	w := doJSONRequest(h, http.MethodPost, "/api/favorites/toggle", inceptionDetails, nil, h.ToggleFavorite)
	if w.Code != http.StatusCreated {
		t.Fatalf("first toggle status = %d, want 201", w.Code)
	}
	var created struct {
		IsFavorited bool `json:"is_favorited"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if !created.IsFavorited {
		t.Error("first toggle should report is_favorited = true")
	}
	if len(store.records) != 1 {
		t.Fatalf("store holds %d records, want 1", len(store.records))
	}

	// Second toggle removes.
	w = doJSONRequest(h, http.MethodPost, "/api/favorites/toggle", inceptionDetails, nil, h.ToggleFavorite)
	if w.Code != http.StatusOK {
		t.Fatalf("second toggle status = %d, want 200", w.Code)
	}
	var removed struct {
		IsFavorited bool `json:"is_favorited"`
	}
	json.Unmarshal(w.Body.Bytes(), &removed)
	if removed.IsFavorited {
		t.Error("second toggle should report is_favorited = false")
	}
	if len(store.records) != 0 {
		t.Errorf("store holds %d records after round trip, want 0", len(store.records))
	}
}

func TestToggleFavorite_MissingIdentifier(t *testing.T) {
	h := &Handler{Favorites: &memStore{}}

	w := doJSONRequest(h, http.MethodPost, "/api/favorites/toggle",
		`{"movie_details": {"title": "No ID"}}`, nil, h.ToggleFavorite)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
