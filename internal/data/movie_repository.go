package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLMovieRepository reads the movie catalogue using sqlx.
type SQLMovieRepository struct {
	db *sqlx.DB
}

// NewSQLMovieRepository creates a new SQLMovieRepository.
func NewSQLMovieRepository(db *sqlx.DB) *SQLMovieRepository {
	return &SQLMovieRepository{db: db}
}

// GetMovieByID retrieves a movie with its genres.
func (r *SQLMovieRepository) GetMovieByID(ctx context.Context, id int64) (*Movie, error) {
	var m Movie
	if err := r.db.GetContext(ctx, &m, `SELECT * FROM movie_list WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by id: %w", err)
	}
	return &m, nil
}

// GetLatestMovies retrieves the n most recently added movies.
func (r *SQLMovieRepository) GetLatestMovies(ctx context.Context, n int) ([]*Movie, error) {
	var movies []*Movie
	if err := r.db.SelectContext(ctx, &movies, `SELECT * FROM movie_list ORDER BY created DESC, id DESC LIMIT ?`, n); err != nil {
		return nil, fmt.Errorf("failed to get latest movies: %w", err)
	}
	return movies, nil
}

// GetAllMovies retrieves the whole catalogue.
func (r *SQLMovieRepository) GetAllMovies(ctx context.Context) ([]*Movie, error) {
	var movies []*Movie
	if err := r.db.SelectContext(ctx, &movies, `SELECT * FROM movie_list ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to get all movies: %w", err)
	}
	return movies, nil
}

// GetGenres retrieves the genres that have at least one movie.
func (r *SQLMovieRepository) GetGenres(ctx context.Context) ([]*Genre, error) {
	var genres []*Genre
	query := `SELECT DISTINCT g.id, g.name FROM genres AS g
		INNER JOIN movie_genres AS mg ON g.id = mg.genre_id
		ORDER BY g.name`
	if err := r.db.SelectContext(ctx, &genres, query); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}
	return genres, nil
}
