package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-movies/internal/data"
	"rental-movies/internal/middleware"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	content ContentServicer
	movies  MovieServicer
	baseURL string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the public address of
// the site.
func NewSeoHandler(content ContentServicer, movies MovieServicer, baseURL string) *SeoHandler {
	return &SeoHandler{content: content, movies: movies, baseURL: strings.TrimRight(baseURL, "/")}
}

// robotsHandler serves robots.txt.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Sitemap: "+h.baseURL+"/sitemap.xml")
	return nil
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler lists the published pages and posts and every movie.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	contents, err := h.content.Published(r.Context())
	if err != nil {
		return middleware.ServiceError(err)
	}
	movies, err := h.movies.All(r.Context())
	if err != nil {
		return middleware.ServiceError(err)
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: h.baseURL + "/"}, {Loc: h.baseURL + "/movies"}, {Loc: h.baseURL + "/news"}},
	}
	for _, c := range contents {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.contentURL(c), LastMod: lastMod(c)})
	}
	for _, m := range movies {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     h.baseURL + "/movies/" + strconv.FormatInt(m.ID, 10),
			LastMod: m.Created.Format(sitemapDateFormat),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to generate sitemap XML", Code: http.StatusInternalServerError}
	}
	return nil
}

func (h *SeoHandler) contentURL(c *data.Content) string {
	if c.Type == data.ContentTypePage && c.URL != nil {
		return h.baseURL + "/pages/" + url.PathEscape(*c.URL)
	}
	return h.baseURL + "/news/" + url.PathEscape(c.Slug)
}

func lastMod(c *data.Content) string {
	t := c.Created
	if c.Updated != nil {
		t = *c.Updated
	}
	if c.Published != nil && c.Published.After(t) {
		t = *c.Published
	}
	return t.In(time.UTC).Format(sitemapDateFormat)
}
