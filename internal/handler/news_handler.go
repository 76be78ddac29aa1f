package handler

import (
	"net/http"

	"rental-movies/internal/data"
	"rental-movies/internal/middleware"
	"rental-movies/internal/view"

	"github.com/go-chi/chi/v5"
)

// NewsHandler serves the published news posts and pages.
type NewsHandler struct {
	content ContentServicer
	paging  Paging
	view    *view.View
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(content ContentServicer, p Paging, v *view.View) *NewsHandler {
	return &NewsHandler{content: content, paging: p, view: v}
}

type newsListing struct {
	listing[data.Content]
	Categories []string `json:"categories"`
}

// rendered is a published page or post with its text as HTML.
type rendered struct {
	*data.Content
	HTML string `json:"html"`
}

func (h *NewsHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	params, appErr := h.paging.searchParams(r)
	if appErr != nil {
		return appErr
	}
	res, err := h.content.Posts(r.Context(), params)
	if err != nil {
		return middleware.ServiceError(err)
	}
	categories, err := h.content.Categories(r.Context())
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, newsListing{
		listing:    newListing(h.paging, r, res),
		Categories: categories,
	})
}

func (h *NewsHandler) post(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	c, err := h.content.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return h.renderContent(w, r, c)
}

func (h *NewsHandler) page(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	c, err := h.content.ByURL(r.Context(), chi.URLParam(r, "url"))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return h.renderContent(w, r, c)
}

func (h *NewsHandler) renderContent(w http.ResponseWriter, r *http.Request, c *data.Content) *middleware.AppError {
	html, err := h.content.Render(r.Context(), c)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render content", Code: http.StatusInternalServerError}
	}
	return render(h.view, w, r, http.StatusOK, rendered{Content: c, HTML: html})
}
