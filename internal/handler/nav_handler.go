package handler

import (
	"context"
	"net/http"

	"rental-movies/internal/breadcrumb"
	"rental-movies/internal/config"
	"rental-movies/internal/menu"
	"rental-movies/internal/middleware"
	"rental-movies/internal/view"
)

// Breadcrumbs builds the trails of the movie and news sections.
type Breadcrumbs interface {
	Movies(ctx context.Context, base, genre string, id int64) ([]breadcrumb.Crumb, error)
	News(ctx context.Context, base, category, slug string) ([]breadcrumb.Crumb, error)
}

// NavHandler serves the navigation bar and the breadcrumbs.
type NavHandler struct {
	menu   config.MenuConfig
	crumbs Breadcrumbs
	view   *view.View
}

// NewNavHandler creates a new NavHandler.
func NewNavHandler(cfg config.MenuConfig, crumbs Breadcrumbs, v *view.View) *NavHandler {
	return &NavHandler{menu: cfg, crumbs: crumbs, view: v}
}

// navbar builds the menu for the visitor. The current query parameter is
// the path of the page being shown.
func (h *NavHandler) navbar(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	current := r.URL.Query().Get("current")
	m := menu.New(h.menu, middleware.GetIdentity(r.Context()), current)
	return render(h.view, w, r, http.StatusOK, m)
}

func (h *NavHandler) movieTrail(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	q := r.URL.Query()
	var id int64
	if q.Get("id") != "" {
		n, appErr := intParam(q, "id", 0)
		if appErr != nil {
			return appErr
		}
		id = int64(n)
	}
	crumbs, err := h.crumbs.Movies(r.Context(), "/movies", q.Get("genre"), id)
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, crumbs)
}

func (h *NavHandler) newsTrail(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	q := r.URL.Query()
	crumbs, err := h.crumbs.News(r.Context(), "/news", q.Get("category"), q.Get("slug"))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, crumbs)
}
