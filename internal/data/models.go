package data

import "time"

// Content types.
const (
	ContentTypePage = "page"
	ContentTypePost = "post"
)

// Content is a page or a news post. Published is nil for unpublished or
// deleted content; Deleted is set while the content is soft-deleted.
type Content struct {
	ID        int64      `db:"id" json:"id"`
	Slug      string     `db:"slug" json:"slug"`
	URL       *string    `db:"url" json:"url,omitempty"`
	Type      string     `db:"type" json:"type"`
	Title     string     `db:"title" json:"title"`
	Data      string     `db:"data" json:"data"`
	Filter    string     `db:"filter" json:"filter"`
	Author    string     `db:"author" json:"author"`
	Category  string     `db:"category" json:"category"`
	Published *time.Time `db:"published" json:"published,omitempty"`
	Created   time.Time  `db:"created" json:"created"`
	Updated   *time.Time `db:"updated" json:"updated,omitempty"`
	Deleted   *time.Time `db:"deleted" json:"deleted,omitempty"`
}

// Available reports whether the content is published at now.
func (c *Content) Available(now time.Time) bool {
	return c.Published != nil && !c.Published.After(now)
}

// User is a member account. Password holds the salted hash.
type User struct {
	ID        int64      `db:"id" json:"id"`
	Acronym   string     `db:"acronym" json:"acronym"`
	Name      string     `db:"name" json:"name"`
	Info      string     `db:"info" json:"info"`
	Email     string     `db:"email" json:"email"`
	Password  string     `db:"password" json:"-"`
	Salt      string     `db:"salt" json:"-"`
	Published *time.Time `db:"published" json:"published,omitempty"`
	Updated   *time.Time `db:"updated" json:"updated,omitempty"`
}

// Movie is a row of the movie_list view: a movie with its genre names
// joined by commas.
type Movie struct {
	ID       int64     `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	Director string    `db:"director" json:"director"`
	Length   int       `db:"length" json:"length"`
	Year     int       `db:"year" json:"year"`
	Plot     string    `db:"plot" json:"plot"`
	Image    string    `db:"image" json:"image"`
	Subtext  string    `db:"subtext" json:"subtext"`
	Speech   string    `db:"speech" json:"speech"`
	Quality  string    `db:"quality" json:"quality"`
	Format   string    `db:"format" json:"format"`
	Price    int       `db:"price" json:"price"`
	Created  time.Time `db:"created" json:"created"`
	Genres   string    `db:"genres" json:"genres"`
}

// Genre is a movie genre.
type Genre struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
