// Package breadcrumb builds the trail shown above the movie and news
// sections.
package breadcrumb

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"rental-movies/internal/config"
)

// Crumb is one step of a trail.
type Crumb struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// MovieTitles looks up movie titles.
type MovieTitles interface {
	TitleByID(ctx context.Context, id int64) (string, error)
}

// NewsTitles looks up news post titles.
type NewsTitles interface {
	TitleBySlug(ctx context.Context, slug string) (string, error)
}

// Builder builds breadcrumb trails.
type Builder struct {
	movies MovieTitles
	news   NewsTitles
	menu   []config.MenuItem
}

// NewBuilder creates a Builder. Section names are taken from the titles of
// the matching menu items.
func NewBuilder(movies MovieTitles, news NewsTitles, menu config.MenuConfig) *Builder {
	return &Builder{movies: movies, news: news, menu: menu.Items}
}

// Movies returns the trail for the movie section, optionally narrowed to a
// genre and a movie. A zero id means no movie.
func (b *Builder) Movies(ctx context.Context, base, genre string, id int64) ([]Crumb, error) {
	var title string
	if id > 0 {
		t, err := b.movies.TitleByID(ctx, id)
		if err != nil {
			return nil, err
		}
		title = t
	}
	var idValue string
	if id > 0 {
		idValue = strconv.FormatInt(id, 10)
	}
	return b.trail(base, "Movies", step{"genre", genre, genre}, step{"id", idValue, title}), nil
}

// News returns the trail for the news section, optionally narrowed to a
// category and a post.
func (b *Builder) News(ctx context.Context, base, category, slug string) ([]Crumb, error) {
	var title string
	if slug != "" {
		t, err := b.news.TitleBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		title = t
	}
	return b.trail(base, "News", step{"category", category, category}, step{"slug", slug, title}), nil
}

type step struct {
	key, value, text string
}

// trail starts at the section page and adds one crumb per set step. Each
// crumb's link keeps the parameters of the steps before it.
func (b *Builder) trail(base, fallback string, steps ...step) []Crumb {
	crumbs := []Crumb{{Text: b.sectionTitle(base, fallback), URL: base}}
	params := url.Values{}
	for _, s := range steps {
		if s.value == "" {
			continue
		}
		params.Add(s.key, s.value)
		crumbs = append(crumbs, Crumb{Text: s.text, URL: base + "?" + encodeOrdered(params, steps)})
	}
	return crumbs
}

// encodeOrdered encodes params in step order rather than sorted by key.
func encodeOrdered(params url.Values, steps []step) string {
	var parts []string
	for _, s := range steps {
		if v := params.Get(s.key); v != "" {
			parts = append(parts, url.QueryEscape(s.key)+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(parts, "&")
}

func (b *Builder) sectionTitle(base, fallback string) string {
	if title := findTitle(b.menu, base); title != "" {
		return title
	}
	return fallback
}

func findTitle(items []config.MenuItem, target string) string {
	for _, item := range items {
		if item.URL == target {
			if item.Title != "" {
				return item.Title
			}
			return item.Text
		}
		if title := findTitle(item.Submenu, target); title != "" {
			return title
		}
	}
	return ""
}
