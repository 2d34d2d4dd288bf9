// favorites.go implements persistence for favorite movies.
//
// A favorite stores the client's movie details blob verbatim as JSONB. The
// record is located by the IMDb identifier embedded in that blob, which
// historically appears under TWO spellings: "imdb_id" (normalized records)
// and "imdbID" (raw OMDb records). Every lookup checks both — this is a
// compatibility contract, not a choice; see DESIGN.md.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/models"
)

// ErrFavoriteNotFound is returned when no favorite matches the lookup.
var ErrFavoriteNotFound = fmt.Errorf("favorite not found")

// ListFavorites returns every favorite record, newest first.
func (db *DB) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := db.SelectContext(ctx, &favorites,
		`SELECT * FROM favorites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// FindFavoriteByIMDbID returns the first favorite whose movie details blob
// carries the given IMDb ID under either accepted spelling, or
// ErrFavoriteNotFound.
func (db *DB) FindFavoriteByIMDbID(ctx context.Context, imdbID string) (*models.Favorite, error) {
	var f models.Favorite
	err := db.GetContext(ctx, &f, `
		SELECT * FROM favorites
		WHERE movie_details->>'imdb_id' = $1 OR movie_details->>'imdbID' = $1
		ORDER BY created_at
		LIMIT 1`, imdbID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite: %w", err)
	}
	return &f, nil
}

// CreateFavorite persists a favorite. The caller supplies ID and the details
// blob; timestamps come back from the database.
func (db *DB) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	query := `
		INSERT INTO favorites (id, movie_details, ip_address)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	return db.QueryRowContext(ctx, query,
		f.ID, f.MovieDetails, f.IPAddress,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
}

// DeleteFavorite removes a favorite by record ID.
func (db *DB) DeleteFavorite(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
