// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// The normalized movie record mirrors the JSON contract the browser client
// consumes — pointer fields serialize as null when the upstream source had
// no value (or only its "N/A" sentinel), which the client relies on.
package models

import (
	"encoding/json"
	"time"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/omdb"
)

// DataQuality grades how complete an upstream metadata record is.
type DataQuality string

const (
	QualityHigh   DataQuality = "high"
	QualityMedium DataQuality = "medium"
	QualityLow    DataQuality = "low"
)

// Runtime is the parsed form of an OMDb runtime string like "148 min".
// When the string carries no parsable minute count only Formatted is set.
type Runtime struct {
	Minutes      *int   `json:"minutes,omitempty"`
	Formatted    string `json:"formatted"`
	HoursMinutes string `json:"hours_minutes,omitempty"` // "2h 28m"
}

// RatingDetail is one normalized rating entry. Normalized is rescaled to a
// 0-10 scale regardless of the source's native scale.
type RatingDetail struct {
	Source     string   `json:"source"`
	Value      string   `json:"value"`
	Normalized *float64 `json:"normalized"`
}

// TrailerInfo is the trailer sub-record embedded in a normalized movie.
type TrailerInfo struct {
	Available    bool   `json:"available"`
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	EmbedURL     string `json:"embed_url"`
	WatchURL     string `json:"watch_url"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

// OMDbSource summarizes what the metadata upstream contributed.
type OMDbSource struct {
	Used        bool        `json:"used"`
	DataQuality DataQuality `json:"data_quality"`
}

// YouTubeSource summarizes what the trailer upstream contributed.
type YouTubeSource struct {
	Used         bool `json:"used"`
	TrailerFound bool `json:"trailer_found"`
}

// DataSources records which upstreams fed a normalized movie.
type DataSources struct {
	OMDb    OMDbSource    `json:"omdb"`
	YouTube YouTubeSource `json:"youtube"`
}

// NormalizedMovie is the fully parsed, unit-consistent movie record combining
// OMDb metadata with an optional YouTube trailer. Built per request on cache
// miss, never mutated afterwards, never persisted.
type NormalizedMovie struct {
	// Basic movie information
	IMDbID      *string  `json:"imdb_id"`
	Title       string   `json:"title"`
	Year        *int     `json:"year"`
	ReleaseDate *string  `json:"release_date"`
	Runtime     *Runtime `json:"runtime"`
	Genre       []string `json:"genre"`
	Plot        string   `json:"plot"`

	// Ratings and scores
	Ratings    map[string]RatingDetail `json:"ratings"`
	IMDbRating *float64                `json:"imdb_rating"`
	IMDbVotes  *int                    `json:"imdb_votes"`

	// Cast and crew
	Director []string `json:"director"`
	Writer   []string `json:"writer"`
	Actors   []string `json:"actors"`

	// Production details
	Country    []string `json:"country"`
	Language   []string `json:"language"`
	Awards     *string  `json:"awards"`
	Production *string  `json:"production"`
	BoxOffice  *string  `json:"box_office"`

	// Media
	Poster *string `json:"poster"`
	Type   string  `json:"type"`

	// Additional metadata
	Rated      *string `json:"rated"`
	Metascore  *int    `json:"metascore"`
	DVDRelease *string `json:"dvd_release"`
	Website    *string `json:"website"`

	// Original OMDb record for backward compatibility
	OMDbData *omdb.Movie `json:"omdb_data"`

	// Trailer — only present when a trailer lookup was supplied
	Trailer *TrailerInfo `json:"trailer,omitempty"`

	DataSources DataSources `json:"data_sources"`
	LastUpdated string      `json:"last_updated"`
}

// Favorite is a persisted user bookmark. The movie details blob is stored
// verbatim as JSONB; the record is keyed for lookups by the IMDb identifier
// embedded inside that blob.
type Favorite struct {
	ID           string          `json:"id" db:"id"`
	MovieDetails json.RawMessage `json:"movie_details" db:"movie_details"`
	IPAddress    string          `json:"ip_address" db:"ip_address"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// --- Request/Response DTOs ---

// FavoriteRequest is the JSON body for POST /api/favorites and
// POST /api/favorites/toggle.
type FavoriteRequest struct {
	MovieDetails json.RawMessage `json:"movie_details" binding:"required"`
}

// Pagination is the metadata block attached to search responses. From/To are
// null when the result set is empty.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	LastPage    int  `json:"last_page"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// SearchResponse is the body of GET /api/movies/search.
type SearchResponse struct {
	Data       []omdb.SearchItem `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// RecommendationsResponse keeps the upstream's "Search" key so existing
// clients can treat recommendations like raw search results.
type RecommendationsResponse struct {
	Search []omdb.SearchItem `json:"Search"`
}

// FavoritesListResponse is the body of GET /api/favorites — only the embedded
// movie details, not the record wrappers.
type FavoritesListResponse struct {
	Data  []json.RawMessage `json:"data"`
	Total int               `json:"total"`
}

// FavoriteCheckResponse is the body of GET /api/favorites/check/:imdbId.
type FavoriteCheckResponse struct {
	IsFavorited bool    `json:"is_favorited"`
	FavoriteID  *string `json:"favorite_id"`
}

// ErrorResponse is the standard error envelope. Code is a machine-readable
// string ("MOVIE_NOT_FOUND", "INTERNAL_ERROR", ...), not an HTTP status.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse carries field-level validation messages.
type ValidationErrorResponse struct {
	Error    string            `json:"error"`
	Messages map[string]string `json:"messages"`
}

// RateLimitResponse tells a throttled client when to retry.
type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"` // seconds
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}
