// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/handlers"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/middleware"
)

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/api/health", h.HealthCheck)

	movies := r.Group("/api/movies")
	{
		movies.GET("/search", h.SearchMovies)
		// The static recommendations prefix must be registered before the
		// :id wildcard matches it.
		movies.GET("/recommendations/:genre", h.Recommendations)
		movies.GET("/:id", h.MovieDetails)
	}

	favorites := r.Group("/api/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.CreateFavorite)
		favorites.GET("/check/:imdbId", h.CheckFavorite)
		favorites.DELETE("/:imdbId", h.DeleteFavorite)
		favorites.POST("/toggle", h.ToggleFavorite)
	}

	return r
}
