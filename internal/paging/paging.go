// Package paging computes page counts and the navigation links of a paged
// listing. Links carry query strings only; rendering them is left to the
// presentation layer.
package paging

import (
	"net/url"
	"strconv"
)

// MaxPage returns the number of pages needed for totalRows rows at pageSize
// rows per page.
func MaxPage(totalRows, pageSize int) int {
	if totalRows <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalRows + pageSize - 1) / pageSize
}

// Link is one navigation target. Query is the request's query string with
// the link's overrides applied. Current marks the page being shown and
// Disabled a link that leads nowhere from here.
type Link struct {
	Label    string `json:"label"`
	Page     int    `json:"page,omitempty"`
	Hits     int    `json:"hits,omitempty"`
	Query    string `json:"query,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Nav is the navigation bar of a paged listing.
type Nav struct {
	First Link   `json:"first"`
	Prev  Link   `json:"prev"`
	Next  Link   `json:"next"`
	Last  Link   `json:"last"`
	Pages []Link `json:"pages"`
}

// Navigation builds the links for page of a listing with pages min..max.
// min is usually 1. A positive hits is kept in every link's query string.
func Navigation(hits, page, max, min int, base url.Values) Nav {
	if hits > 0 {
		base = withValues(base, map[string]string{"hits": strconv.Itoa(hits)})
	}
	nav := Nav{
		First: pageLink("<<", min, base, page == min),
		Prev:  pageLink("<", prevPage(page, min), base, page <= min),
		Next:  pageLink(">", nextPage(page, max), base, page >= max),
		Last:  pageLink(">>", max, base, page == max),
		Pages: []Link{},
	}
	for i := min; i <= max; i++ {
		l := pageLink(strconv.Itoa(i), i, base, false)
		if i == page {
			l.Current = true
			l.Query = ""
		}
		nav.Pages = append(nav.Pages, l)
	}
	return nav
}

// HitsPerPage builds one link per page size option. The link for the current
// size is marked Current.
func HitsPerPage(options []int, current int, base url.Values) []Link {
	links := make([]Link, 0, len(options))
	for _, hits := range options {
		l := Link{Label: strconv.Itoa(hits), Hits: hits}
		if hits == current {
			l.Current = true
		} else {
			l.Query = withOverrides(base, map[string]string{"hits": strconv.Itoa(hits)})
		}
		links = append(links, l)
	}
	return links
}

func prevPage(page, min int) int {
	if page > min {
		return page - 1
	}
	return min
}

func nextPage(page, max int) int {
	if page < max {
		return page + 1
	}
	return max
}

func pageLink(label string, page int, base url.Values, disabled bool) Link {
	l := Link{Label: label, Page: page, Disabled: disabled}
	if !disabled {
		l.Query = withOverrides(base, map[string]string{"page": strconv.Itoa(page)})
	}
	return l
}

func withOverrides(base url.Values, overrides map[string]string) string {
	return "?" + withValues(base, overrides).Encode()
}

func withValues(base url.Values, overrides map[string]string) url.Values {
	q := url.Values{}
	for k, v := range base {
		q[k] = append([]string(nil), v...)
	}
	for k, v := range overrides {
		q.Set(k, v)
	}
	return q
}
