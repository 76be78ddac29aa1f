package handler

import (
	"net/http"

	"rental-movies/internal/data"
	"rental-movies/internal/middleware"
	"rental-movies/internal/query"
	"rental-movies/internal/view"
)

const frontPageItems = 3

// MovieHandler serves the movie catalogue and the front page.
type MovieHandler struct {
	movies  MovieServicer
	content ContentServicer
	paging  Paging
	view    *view.View
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies MovieServicer, content ContentServicer, p Paging, v *view.View) *MovieHandler {
	return &MovieHandler{movies: movies, content: content, paging: p, view: v}
}

type frontPage struct {
	Movies []*data.Movie   `json:"movies"`
	News   []*data.Content `json:"news"`
}

// front lists the latest movies and news posts.
func (h *MovieHandler) front(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	movies, err := h.movies.Latest(r.Context(), frontPageItems)
	if err != nil {
		return middleware.ServiceError(err)
	}
	posts, err := h.content.Posts(r.Context(), query.Params{Hits: frontPageItems, Page: 1})
	if err != nil {
		return middleware.ServiceError(err)
	}
	news := make([]*data.Content, 0, len(posts.Rows))
	for i := range posts.Rows {
		news = append(news, &posts.Rows[i])
	}
	return render(h.view, w, r, http.StatusOK, frontPage{Movies: movies, News: news})
}

// list searches the catalogue.
func (h *MovieHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	params, appErr := h.paging.searchParams(r)
	if appErr != nil {
		return appErr
	}
	res, err := h.movies.Search(r.Context(), params)
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, newListing(h.paging, r, res))
}

func (h *MovieHandler) show(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	movie, err := h.movies.Get(r.Context(), id)
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, movie)
}

func (h *MovieHandler) genres(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	genres, err := h.movies.Genres(r.Context())
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, genres)
}

// render writes data as the response and reports encoding failures.
func render(v *view.View, w http.ResponseWriter, r *http.Request, status int, data interface{}) *middleware.AppError {
	if err := v.Render(w, r, status, data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}
