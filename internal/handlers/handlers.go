// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers are grouped on a struct holding shared dependencies.
// The dependencies are small interfaces rather than concrete types, so the
// orchestration logic (cache lookup → rate gate → upstream fetch → normalize
// → cache store → respond) is testable without network access or Postgres —
// the concrete omdb, youtube, cache, ratelimit and database types satisfy
// them in production.
package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/cache"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/config"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/database"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/models"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/omdb"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/youtube"
)

// MovieSource fetches movie metadata from the upstream metadata API.
type MovieSource interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResult, error)
	GetByID(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

// TrailerSource finds the best-ranked trailer for a movie title.
type TrailerSource interface {
	FindTrailer(ctx context.Context, movieTitle string) (*youtube.Trailer, error)
}

// ResponseCache stores (payload, status) pairs under derived keys with a
// fixed TTL.
type ResponseCache interface {
	Get(key string) (cache.Entry, bool)
	Put(key string, e cache.Entry)
}

// SearchLimiter gates uncached upstream fetches per client key.
type SearchLimiter interface {
	Attempt(key string) bool
	Remaining(key string) int
	AvailableIn(key string) time.Duration
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// FavoriteStore persists favorite movie records.
type FavoriteStore interface {
	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	FindFavoriteByIMDbID(ctx context.Context, imdbID string) (*models.Favorite, error)
	CreateFavorite(ctx context.Context, f *models.Favorite) error
	DeleteFavorite(ctx context.Context, id string) error
}

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	Movies    MovieSource
	Trailers  TrailerSource
	Cache     ResponseCache
	Limiter   SearchLimiter
	Favorites FavoriteStore

	// DB is only used by the health check; favorites go through the
	// FavoriteStore interface.
	DB HealthChecker

	// Version is the build version the health endpoint reports.
	Version string

	// OMDbKeyConfigured gates the details endpoint — without a key every
	// metadata fetch would fail anyway, so we fail fast with a clear code.
	OMDbKeyConfigured bool
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(db *database.DB, movies MovieSource, trailers TrailerSource, respCache ResponseCache, limiter SearchLimiter, cfg *config.Config, version string) *Handler {
	return &Handler{
		Movies:            movies,
		Trailers:          trailers,
		Cache:             respCache,
		Limiter:           limiter,
		Favorites:         db,
		DB:                db,
		Version:           version,
		OMDbKeyConfigured: cfg.OMDbAPIKey != "",
	}
}

// extractIMDbID pulls the IMDb identifier out of a movie details blob,
// accepting both historical spellings. Returns "" when neither is present.
func extractIMDbID(details json.RawMessage) string {
	var fields map[string]any
	if err := json.Unmarshal(details, &fields); err != nil {
		return ""
	}
	if id, ok := fields["imdb_id"].(string); ok && id != "" {
		return id
	}
	if id, ok := fields["imdbID"].(string); ok && id != "" {
		return id
	}
	return ""
}
