// Package textfilter renders stored content text to sanitized HTML.
package textfilter

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"rental-movies/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Filter names accepted in the content filter column.
const (
	Link     = "link"
	Markdown = "markdown"
	NL2BR    = "nl2br"
)

// filters are applied in this order
var known = []string{Link, Markdown, NL2BR}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+[^\s<>"'.,;:!?)]`)

// Parse splits a comma separated filter list, rejecting unknown names. The
// result is deduplicated and in application order.
func Parse(s string) ([]string, error) {
	seen := map[string]bool{}
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !isKnown(name) {
			return nil, fmt.Errorf("unknown filter %q", name)
		}
		seen[name] = true
	}
	filters := []string{}
	for _, name := range known {
		if seen[name] {
			filters = append(filters, name)
		}
	}
	return filters, nil
}

func isKnown(name string) bool {
	for _, k := range known {
		if k == name {
			return true
		}
	}
	return false
}

// Filter applies text filters and sanitizes the result.
type Filter struct {
	markdown       goldmark.Markdown
	linkedMarkdown goldmark.Markdown
	sanitizer      *bluemonday.Policy
}

// New creates a Filter.
func New() *Filter {
	return &Filter{
		markdown:       goldmark.New(),
		linkedMarkdown: goldmark.New(goldmark.WithExtensions(extension.Linkify)),
		sanitizer:      bluemonday.UGCPolicy(),
	}
}

// Apply runs the named filters over text and returns safe HTML.
func (f *Filter) Apply(text string, filters []string) (string, error) {
	on := map[string]bool{}
	for _, name := range filters {
		on[name] = true
	}

	out := text
	switch {
	case on[Markdown]:
		md := f.markdown
		if on[Link] {
			md = f.linkedMarkdown
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(out), &buf); err != nil {
			return "", fmt.Errorf("failed to render markdown: %w", err)
		}
		out = buf.String()
	case on[Link]:
		out = urlPattern.ReplaceAllString(out, `<a href="$0">$0</a>`)
	}
	if on[NL2BR] {
		out = strings.ReplaceAll(out, "\n", "<br>\n")
	}
	return f.sanitizer.Sanitize(out), nil
}

// Store is the cache the Renderer keeps rendered HTML in.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Renderer renders content through a Filter, caching the result.
type Renderer struct {
	filter *Filter
	store  Store
	ttl    time.Duration
	log    logger.Logger
}

// NewRenderer creates a Renderer. A nil store disables caching.
func NewRenderer(f *Filter, store Store, ttl time.Duration, log logger.Logger) *Renderer {
	return &Renderer{filter: f, store: store, ttl: ttl, log: log}
}

// Render returns the HTML for text filtered by the comma separated filters.
// key identifies the content version in the cache.
func (r *Renderer) Render(ctx context.Context, key, filters, text string) (string, error) {
	if r.store != nil {
		cached, err := r.store.Get(ctx, key)
		if err != nil {
			r.log.With(map[string]interface{}{"key": key}).Error(err, "failed to read render cache")
		} else if cached != nil {
			return string(cached), nil
		}
	}

	names, err := Parse(filters)
	if err != nil {
		return "", err
	}
	html, err := r.filter.Apply(text, names)
	if err != nil {
		return "", err
	}

	if r.store != nil {
		if err := r.store.Set(ctx, key, []byte(html), r.ttl); err != nil {
			r.log.With(map[string]interface{}{"key": key}).Error(err, "failed to write render cache")
		}
	}
	return html, nil
}
