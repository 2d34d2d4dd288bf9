// favorites.go handles the favorite-movie CRUD endpoints.
//
// Favorites are keyed by the IMDb ID embedded in the stored movie details
// blob, under either of its two historical spellings. Create is idempotent:
// favoriting an already-favorited movie returns the existing record instead
// of inserting a duplicate. The check-then-insert is not transactional —
// concurrent identical requests can race (kept as observed behavior, see
// DESIGN.md).
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/database"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/models"
)

// ListFavorites returns every favorited movie's details blob.
// GET /api/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.Favorites.ListFavorites(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list favorites: %v (ip=%s)", err, c.ClientIP())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to fetch favorites.",
		})
		return
	}

	// Clients get the embedded movie details, not the record wrappers.
	movies := make([]json.RawMessage, 0, len(favorites))
	for _, f := range favorites {
		movies = append(movies, f.MovieDetails)
	}

	c.JSON(http.StatusOK, models.FavoritesListResponse{
		Data:  movies,
		Total: len(movies),
	})
}

// CheckFavorite reports whether a movie is favorited.
// GET /api/favorites/check/:imdbId
func (h *Handler) CheckFavorite(c *gin.Context) {
	imdbID := c.Param("imdbId")

	favorite, err := h.Favorites.FindFavoriteByIMDbID(c.Request.Context(), imdbID)
	if err != nil && !errors.Is(err, database.ErrFavoriteNotFound) {
		log.Printf("❌ Failed to check favorite: %v (imdb_id=%s, ip=%s)", err, imdbID, c.ClientIP())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to check favorite.",
		})
		return
	}

	response := models.FavoriteCheckResponse{IsFavorited: favorite != nil}
	if favorite != nil {
		response.FavoriteID = &favorite.ID
	}
	c.JSON(http.StatusOK, response)
}

// CreateFavorite stores a movie as a favorite. Idempotent: if the movie is
// already favorited, the existing record is returned with 200.
// POST /api/favorites
func (h *Handler) CreateFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Error:    "Validation failed.",
			Messages: map[string]string{"movie_details": "The movie details field is required."},
		})
		return
	}

	if imdbID := extractIMDbID(req.MovieDetails); imdbID != "" {
		existing, err := h.Favorites.FindFavoriteByIMDbID(c.Request.Context(), imdbID)
		if err != nil && !errors.Is(err, database.ErrFavoriteNotFound) {
			log.Printf("❌ Failed to check existing favorite: %v (imdb_id=%s)", err, imdbID)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to add favorite.",
			})
			return
		}
		if existing != nil {
			c.JSON(http.StatusOK, gin.H{
				"message":  "Movie is already in favorites",
				"favorite": existing,
			})
			return
		}
	}

	favorite := &models.Favorite{
		ID:           uuid.NewString(),
		MovieDetails: req.MovieDetails,
		IPAddress:    c.ClientIP(),
	}
	if err := h.Favorites.CreateFavorite(c.Request.Context(), favorite); err != nil {
		log.Printf("❌ Failed to create favorite: %v (ip=%s)", err, c.ClientIP())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Database error.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Favorite added successfully",
		"favorite": favorite,
	})
}

// DeleteFavorite removes a favorite by IMDb ID.
// DELETE /api/favorites/:imdbId
func (h *Handler) DeleteFavorite(c *gin.Context) {
	imdbID := c.Param("imdbId")

	favorite, err := h.Favorites.FindFavoriteByIMDbID(c.Request.Context(), imdbID)
	if errors.Is(err, database.ErrFavoriteNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Favorite not found",
		})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to look up favorite: %v (imdb_id=%s)", err, imdbID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to remove favorite.",
		})
		return
	}

	if err := h.Favorites.DeleteFavorite(c.Request.Context(), favorite.ID); err != nil {
		if errors.Is(err, database.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Favorite not found",
			})
			return
		}
		log.Printf("❌ Failed to delete favorite: %v (imdb_id=%s)", err, imdbID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to remove favorite.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed successfully"})
}

// ToggleFavorite adds the movie when absent, removes it when present.
// POST /api/favorites/toggle
func (h *Handler) ToggleFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Error:    "Validation failed.",
			Messages: map[string]string{"movie_details": "The movie details field is required."},
		})
		return
	}

	imdbID := extractIMDbID(req.MovieDetails)
	if imdbID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Movie IMDb ID is required",
		})
		return
	}

	existing, err := h.Favorites.FindFavoriteByIMDbID(c.Request.Context(), imdbID)
	if err != nil && !errors.Is(err, database.ErrFavoriteNotFound) {
		log.Printf("❌ Failed to toggle favorite: %v (imdb_id=%s)", err, imdbID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to toggle favorite.",
		})
		return
	}

	if existing != nil {
		if err := h.Favorites.DeleteFavorite(c.Request.Context(), existing.ID); err != nil {
			log.Printf("❌ Failed to remove favorite in toggle: %v (imdb_id=%s)", err, imdbID)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to toggle favorite.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Favorite removed successfully",
			"is_favorited": false,
		})
		return
	}

	favorite := &models.Favorite{
		ID:           uuid.NewString(),
		MovieDetails: req.MovieDetails,
		IPAddress:    c.ClientIP(),
	}
	if err := h.Favorites.CreateFavorite(c.Request.Context(), favorite); err != nil {
		log.Printf("❌ Failed to add favorite in toggle: %v (ip=%s)", err, c.ClientIP())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Database error.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Favorite added successfully",
		"favorite":     favorite,
		"is_favorited": true,
	})
}
