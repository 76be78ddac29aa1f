// Package menu builds the navigation bar from its configured tree, marking
// the items on the path to the current page.
package menu

import (
	"strings"

	"rental-movies/internal/auth"
	"rental-movies/internal/config"
)

// Node is a menu item as presented to the visitor. Selected is set on the
// item for the current page, InPath on its ancestors.
type Node struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Class    string `json:"class,omitempty"`
	Selected bool   `json:"selected,omitempty"`
	InPath   bool   `json:"in_path,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Menu is a built navigation bar.
type Menu struct {
	ID      string `json:"id,omitempty"`
	Class   string `json:"class,omitempty"`
	Wrapper string `json:"wrapper"`
	Items   []Node `json:"items"`
}

// New builds the menu described by cfg for a visitor with identity id who
// is looking at the page at current.
func New(cfg config.MenuConfig, id auth.Identity, current string) Menu {
	items, _ := Build(Visible(cfg.Items, id), current)
	wrapper := cfg.Wrapper
	if wrapper == "" {
		wrapper = "nav"
	}
	return Menu{ID: cfg.ID, Class: cfg.Class, Wrapper: wrapper, Items: items}
}

// Build converts items into nodes and reports whether current was found
// anywhere in the tree.
func Build(items []config.MenuItem, current string) ([]Node, bool) {
	nodes := make([]Node, 0, len(items))
	found := false
	for _, item := range items {
		children, childSelected := Build(item.Submenu, current)
		n := Node{
			Text:     item.Text,
			URL:      item.URL,
			Title:    item.Title,
			Class:    item.Class,
			Selected: matches(item.URL, current),
			InPath:   childSelected,
		}
		if len(children) > 0 {
			n.Children = children
		}
		found = found || n.Selected || n.InPath
		nodes = append(nodes, n)
	}
	return nodes, found
}

// Visible filters the tree down to the items shown to id.
func Visible(items []config.MenuItem, id auth.Identity) []config.MenuItem {
	var out []config.MenuItem
	for _, item := range items {
		if !shown(item.Show, id) {
			continue
		}
		item.Submenu = Visible(item.Submenu, id)
		out = append(out, item)
	}
	return out
}

func shown(show string, id auth.Identity) bool {
	switch show {
	case "anonymous":
		return !id.IsAuthenticated()
	case "user":
		return id.IsAuthenticated() && !id.IsAdmin()
	case "admin":
		return id.IsAdmin()
	default:
		return true
	}
}

// matches reports whether url is the current page or one of its parents.
// The site root only matches itself.
func matches(url, current string) bool {
	if url == "" {
		return false
	}
	if url == current {
		return true
	}
	if url == "/" {
		return false
	}
	return strings.HasPrefix(current, strings.TrimSuffix(url, "/")+"/")
}
