// movies.go handles the search, details and recommendations endpoints.
//
// Every endpoint follows the same state machine: validate → cache lookup →
// (hit: respond) | (miss: fetch upstream → normalize → cache → respond).
// Search additionally gates cache misses behind a per-IP rate limit; cache
// hits bypass the limiter entirely.
package handlers

import (
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/cache"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/mapper"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/models"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/omdb"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/youtube"
)

// resultsPerPage is the page size this API exposes. OMDb serves fixed
// omdb.PageSize-result pages, so each OMDb page covers several of ours.
const resultsPerPage = 5

// pagesPerUpstreamPage is how many of our pages fit in one OMDb page.
const pagesPerUpstreamPage = omdb.PageSize / resultsPerPage

// SearchMovies searches for movies by title.
// GET /api/movies/search?title=inception&page=1
func (h *Handler) SearchMovies(c *gin.Context) {
	title := c.Query("title")
	pageParam := c.DefaultQuery("page", "1")

	// Manual validation — the error messages are part of the API contract.
	messages := map[string]string{}
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) < 2 || utf8.RuneCountInString(title) > 100 {
		messages["title"] = "The title parameter is required and must be 2-100 characters."
	}
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		messages["page"] = "The page parameter must be a positive integer."
	}
	if len(messages) > 0 {
		log.Printf("❌ Validation error in search: %v (ip=%s, title=%q, page=%q)",
			messages, c.ClientIP(), title, pageParam)
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Error:    "Invalid input.",
			Messages: messages,
		})
		return
	}

	cacheKey := fmt.Sprintf("movie_search_%x_page_%d", md5.Sum([]byte(strings.ToLower(title))), page)
	if entry, ok := h.Cache.Get(cacheKey); ok {
		log.Printf("ℹ️  Movie search cache hit (key=%s, title=%q, page=%d)", cacheKey, title, page)
		c.JSON(entry.Status, entry.Data)
		return
	}
	log.Printf("ℹ️  Movie search cache miss (key=%s, title=%q, page=%d)", cacheKey, title, page)

	// Only uncached searches count against the limit.
	limiterKey := "search_" + c.ClientIP()
	if !h.Limiter.Attempt(limiterKey) {
		log.Printf("❌ Rate limit exceeded for search endpoint (ip=%s, path=%s, method=%s, title=%q, remaining=%d)",
			c.ClientIP(), c.Request.URL.Path, c.Request.Method, title, h.Limiter.Remaining(limiterKey))
		c.JSON(http.StatusTooManyRequests, models.RateLimitResponse{
			Error:      "Too many requests. Please wait before trying again.",
			RetryAfter: int(math.Ceil(h.Limiter.AvailableIn(limiterKey).Seconds())),
		})
		return
	}

	// Page N of ours maps into OMDb page ceil(N / pagesPerUpstreamPage),
	// sliced to the matching 5-result half.
	omdbPage := (page + pagesPerUpstreamPage - 1) / pagesPerUpstreamPage
	result, err := h.Movies.Search(c.Request.Context(), title, omdbPage)
	if err != nil {
		var apiErr *omdb.APIError
		if errors.As(err, &apiErr) {
			log.Printf("❌ OMDb search API error: status=%d body=%s (ip=%s, title=%q, page=%d)",
				apiErr.StatusCode, apiErr.Body, c.ClientIP(), title, page)
			c.JSON(apiErr.StatusCode, models.ErrorResponse{
				Error: "Failed to fetch movie data from OMDb API",
				Code:  "OMDB_API_ERROR",
			})
			return
		}
		log.Printf("❌ Search API error: %v (ip=%s, title=%q, page=%d)", err, c.ClientIP(), title, page)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error while searching movies",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	total, _ := strconv.Atoi(result.TotalResults)

	// Slice the OMDb page down to our 5-result page.
	start := (page - 1) % pagesPerUpstreamPage * resultsPerPage
	paged := []omdb.SearchItem{}
	if start < len(result.Search) {
		end := start + resultsPerPage
		if end > len(result.Search) {
			end = len(result.Search)
		}
		paged = result.Search[start:end]
	}

	response := models.SearchResponse{
		Data:       paged,
		Pagination: buildPagination(page, total),
	}

	h.Cache.Put(cacheKey, cache.Entry{Data: response, Status: http.StatusOK})
	c.JSON(http.StatusOK, response)
}

// buildPagination recomputes client-facing pagination metadata from the
// upstream's reported total.
func buildPagination(page, total int) models.Pagination {
	p := models.Pagination{
		CurrentPage: page,
		PerPage:     resultsPerPage,
		Total:       total,
		LastPage:    int(math.Ceil(float64(total) / float64(resultsPerPage))),
	}
	if total > 0 {
		from := (page-1)*resultsPerPage + 1
		to := page * resultsPerPage
		if to > total {
			to = total
		}
		p.From = &from
		p.To = &to
	}
	return p
}

// MovieDetails returns the normalized record for one movie, trailer included
// when one can be found.
// GET /api/movies/:id
func (h *Handler) MovieDetails(c *gin.Context) {
	id := c.Param("id")

	if !h.OMDbKeyConfigured {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "OMDb API key not configured",
			Code:  "OMDB_API_KEY_MISSING",
		})
		return
	}

	cacheKey := "movie_details_" + id
	if entry, ok := h.Cache.Get(cacheKey); ok {
		log.Printf("ℹ️  Movie details cache hit (key=%s)", cacheKey)
		c.JSON(entry.Status, entry.Data)
		return
	}
	log.Printf("ℹ️  Movie details cache miss (key=%s)", cacheKey)

	movie, err := h.Movies.GetByID(c.Request.Context(), id)
	if err != nil {
		var apiErr *omdb.APIError
		if errors.As(err, &apiErr) {
			log.Printf("❌ OMDb API request failed: status=%d body=%s (imdb_id=%s, ip=%s)",
				apiErr.StatusCode, apiErr.Body, id, c.ClientIP())
			c.JSON(apiErr.StatusCode, models.ErrorResponse{
				Error: "Failed to fetch movie data from OMDb API",
				Code:  "OMDB_API_ERROR",
			})
			return
		}
		log.Printf("❌ Movie details API failed: %v (imdb_id=%s, ip=%s)", err, id, c.ClientIP())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error while fetching movie details",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if !movie.Found() {
		msg := movie.Error
		if msg == "" {
			msg = "Movie not found"
		}
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: msg,
			Code:  "MOVIE_NOT_FOUND",
		})
		return
	}

	// Trailer lookup is best-effort: a failure is logged and the request
	// proceeds without a trailer.
	var trailer *youtube.Trailer
	if movie.Title != "" {
		trailer, err = h.Trailers.FindTrailer(c.Request.Context(), movie.Title)
		if err != nil {
			log.Printf("⚠️  YouTube lookup failed, continuing without trailer: %v (title=%q)", err, movie.Title)
			trailer = nil
		}
	}

	combined := mapper.Combine(movie, trailer)

	h.Cache.Put(cacheKey, cache.Entry{Data: combined, Status: http.StatusOK})
	c.JSON(http.StatusOK, combined)
}

// Recommendations returns three random movies loosely matching a genre, by
// searching the genre as free text on a random upstream page. The random
// page is chosen per request, so repeated calls for the same genre land on
// different cache entries — observed behavior, kept on purpose (DESIGN.md).
// GET /api/movies/recommendations/:genre
func (h *Handler) Recommendations(c *gin.Context) {
	genre := c.Param("genre")
	page := rand.Intn(10) + 1

	cacheKey := "recommendations_" + strings.ToLower(genre) + "_page_" + strconv.Itoa(page)
	if entry, ok := h.Cache.Get(cacheKey); ok {
		log.Printf("ℹ️  Recommendations cache hit (key=%s, genre=%q)", cacheKey, genre)
		c.JSON(entry.Status, entry.Data)
		return
	}
	log.Printf("ℹ️  Recommendations cache miss (key=%s, genre=%q)", cacheKey, genre)

	result, err := h.Movies.Search(c.Request.Context(), genre, page)
	if err != nil {
		var apiErr *omdb.APIError
		if errors.As(err, &apiErr) {
			log.Printf("❌ OMDb recommendations API error: status=%d body=%s (genre=%q)",
				apiErr.StatusCode, apiErr.Body, genre)
			c.JSON(apiErr.StatusCode, gin.H{
				"error":   "Failed to fetch recommendations from OMDb API.",
				"details": apiErr.Body,
			})
			return
		}
		log.Printf("❌ Unexpected error in recommendations: %v (genre=%q, page=%d)", err, genre, page)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error while fetching recommendations.",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if len(result.Search) == 0 {
		log.Printf("❌ No recommendations found (genre=%q, page=%d)", genre, page)
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No recommendations found for the given genre.",
			"genre":   genre,
			"results": []omdb.SearchItem{},
		})
		return
	}

	// Shuffle a copy and keep 3.
	picks := make([]omdb.SearchItem, len(result.Search))
	copy(picks, result.Search)
	rand.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})
	if len(picks) > 3 {
		picks = picks[:3]
	}

	response := models.RecommendationsResponse{Search: picks}
	h.Cache.Put(cacheKey, cache.Entry{Data: response, Status: http.StatusOK})
	c.JSON(http.StatusOK, response)
}
