package service

import (
	"context"

	"rental-movies/internal/data"
	"rental-movies/internal/query"
	"rental-movies/internal/search"
)

// MovieRepository defines the read operations on the movie catalogue.
type MovieRepository interface {
	GetMovieByID(ctx context.Context, id int64) (*data.Movie, error)
	GetLatestMovies(ctx context.Context, n int) ([]*data.Movie, error)
	GetAllMovies(ctx context.Context) ([]*data.Movie, error)
	GetGenres(ctx context.Context) ([]*data.Genre, error)
}

var movieColumns = []query.Column{
	{Key: "id", Name: "id", Match: query.Equals},
	{Key: "title", Name: "title", Match: query.Contains},
	{Key: "genre", Name: "genres", Match: query.Contains},
	{Key: "year1", Name: "year", Match: query.AtLeast},
	{Key: "year2", Name: "year", Match: query.AtMost},
}

var movieSortable = map[string]string{
	"id":       "id",
	"title":    "title",
	"year":     "year",
	"price":    "price",
	"director": "director",
	"length":   "length",
}

// MovieService provides read access to the movie catalogue.
type MovieService struct {
	repo   MovieRepository
	movies *search.Service[data.Movie]
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo MovieRepository, db search.Querier) *MovieService {
	return &MovieService{
		repo:   repo,
		movies: search.New[data.Movie](db, "movie_list", query.NewBuilder(movieColumns, movieSortable, "id")),
	}
}

// Search pages through the catalogue by id, title, genre and year range.
func (s *MovieService) Search(ctx context.Context, p query.Params) (*search.PageResult[data.Movie], error) {
	for _, key := range []string{"id", "year1", "year2"} {
		if err := requireInt(p.Filters, key); err != nil {
			return nil, err
		}
	}
	res, err := s.movies.Search(ctx, p)
	if err != nil {
		return nil, searchError("search movies", err)
	}
	return res, nil
}

// Get returns a single movie.
func (s *MovieService) Get(ctx context.Context, id int64) (*data.Movie, error) {
	m, err := s.repo.GetMovieByID(ctx, id)
	if err != nil {
		return nil, gatewayError("get movie", err)
	}
	return m, nil
}

// TitleByID returns the title of a movie.
func (s *MovieService) TitleByID(ctx context.Context, id int64) (string, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return m.Title, nil
}

// Latest returns the n most recently added movies.
func (s *MovieService) Latest(ctx context.Context, n int) ([]*data.Movie, error) {
	if n <= 0 {
		return []*data.Movie{}, nil
	}
	movies, err := s.repo.GetLatestMovies(ctx, n)
	if err != nil {
		return nil, gatewayError("get latest movies", err)
	}
	return movies, nil
}

// All returns the whole catalogue.
func (s *MovieService) All(ctx context.Context) ([]*data.Movie, error) {
	movies, err := s.repo.GetAllMovies(ctx)
	if err != nil {
		return nil, gatewayError("get movies", err)
	}
	return movies, nil
}

// Genres lists the genres in the catalogue.
func (s *MovieService) Genres(ctx context.Context) ([]*data.Genre, error) {
	genres, err := s.repo.GetGenres(ctx)
	if err != nil {
		return nil, gatewayError("get genres", err)
	}
	return genres, nil
}
