package handler

import (
	"net/http"

	"rental-movies/internal/logger"
	"rental-movies/internal/middleware"
	"rental-movies/internal/session"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// UploadPrefix is the URL path uploaded images are served under.
const UploadPrefix = "/uploads"

// Handlers groups the route handlers.
type Handlers struct {
	Movies  *MovieHandler
	News    *NewsHandler
	Content *ContentHandler
	Users   *UserHandler
	Auth    *AuthHandler
	Nav     *NavHandler
	Seo     *SeoHandler
	Upload  *UploadHandler
}

// NewRouter creates and configures a new chi router. Every route passes the
// authorization middleware; errMW turns handler errors into responses.
func NewRouter(h Handlers, authzMiddleware func(http.Handler) http.Handler, errMW func(middleware.AppHandler) http.Handler, sm session.Manager, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(sm.LoadAndSave)

	r.Group(func(r chi.Router) {
		r.Use(authzMiddleware)

		r.Method(http.MethodGet, "/", errMW(h.Movies.front))
		r.Method(http.MethodGet, "/front", errMW(h.Movies.front))
		r.Method(http.MethodGet, "/movies", errMW(h.Movies.list))
		r.Method(http.MethodGet, "/movies/{id}", errMW(h.Movies.show))
		r.Method(http.MethodGet, "/genres", errMW(h.Movies.genres))

		r.Method(http.MethodGet, "/news", errMW(h.News.list))
		r.Method(http.MethodGet, "/news/{slug}", errMW(h.News.post))
		r.Method(http.MethodGet, "/pages/{url}", errMW(h.News.page))

		r.Method(http.MethodGet, "/navbar", errMW(h.Nav.navbar))
		r.Method(http.MethodGet, "/breadcrumb/movies", errMW(h.Nav.movieTrail))
		r.Method(http.MethodGet, "/breadcrumb/news", errMW(h.Nav.newsTrail))

		r.Method(http.MethodGet, "/robots.txt", errMW(h.Seo.robotsHandler))
		r.Method(http.MethodGet, "/sitemap.xml", errMW(h.Seo.sitemapHandler))

		r.Method(http.MethodPost, "/auth/login", errMW(h.Auth.handleLogin))
		r.Method(http.MethodPost, "/auth/logout", errMW(h.Auth.handleLogout))
		r.Method(http.MethodGet, "/auth/status", errMW(h.Auth.handleStatus))
		r.Method(http.MethodGet, "/auth/oidc/login", errMW(h.Auth.handleSSOLogin))
		r.Method(http.MethodGet, "/auth/oidc/callback", errMW(h.Auth.handleSSOCallback))

		r.Route("/content", func(r chi.Router) {
			r.Method(http.MethodGet, "/", errMW(h.Content.search))
			r.Method(http.MethodPost, "/", errMW(h.Content.create))
			r.Method(http.MethodGet, "/status", errMW(h.Content.status))
			r.Method(http.MethodPost, "/reset", errMW(h.Content.reset))
			r.Method(http.MethodGet, "/{id}", errMW(h.Content.show))
			r.Method(http.MethodPost, "/{id}", errMW(h.Content.update))
			r.Method(http.MethodDelete, "/{id}", errMW(h.Content.delete))
			r.Method(http.MethodPost, "/{id}/erase", errMW(h.Content.erase))
		})

		r.Route("/users", func(r chi.Router) {
			r.Method(http.MethodGet, "/", errMW(h.Users.search))
			r.Method(http.MethodPost, "/", errMW(h.Users.create))
			r.Method(http.MethodGet, "/{id}", errMW(h.Users.show))
			r.Method(http.MethodPost, "/{id}", errMW(h.Users.update))
			r.Method(http.MethodDelete, "/{id}", errMW(h.Users.delete))
		})

		r.Method(http.MethodPost, "/upload", errMW(h.Upload.upload))
		r.Handle(UploadPrefix+"/*", http.StripPrefix(UploadPrefix, http.FileServer(http.Dir(h.Upload.uploader.Dir()))))
	})

	return r
}
