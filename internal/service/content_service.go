package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-movies/internal/auth"
	"rental-movies/internal/data"
	"rental-movies/internal/query"
	"rental-movies/internal/search"
	"rental-movies/internal/textfilter"
)

// ContentRepository defines the database operations on pages and news posts.
type ContentRepository interface {
	CreateContent(ctx context.Context, c *data.Content) (int64, error)
	UpdateContent(ctx context.Context, c *data.Content, republish bool) error
	SoftDeleteContent(ctx context.Context, id int64, now time.Time) error
	EraseContent(ctx context.Context, id int64) error
	GetContentByID(ctx context.Context, id int64) (*data.Content, error)
	GetPostBySlug(ctx context.Context, slug string) (*data.Content, error)
	GetPageByURL(ctx context.Context, url string, now time.Time) (*data.Content, error)
	GetAllContent(ctx context.Context) ([]*data.Content, error)
	GetPublished(ctx context.Context, now time.Time) ([]*data.Content, error)
	GetCategories(ctx context.Context) ([]string, error)
	ReplaceAllContent(ctx context.Context, contents []*data.Content) error
}

// Renderer turns stored content text into HTML using the content's filters.
type Renderer interface {
	Render(ctx context.Context, key, filters, text string) (string, error)
}

// ContentInput holds the editable fields of a page or news post. Published
// is a date or timestamp in the site's time zone, or empty.
type ContentInput struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Data      string `json:"data"`
	Type      string `json:"type"`
	Filter    string `json:"filter"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Published string `json:"published"`
}

// ContentStatus is a row of the administrator's content list.
type ContentStatus struct {
	*data.Content
	Available bool `json:"available"`
}

// Settings holds the site-wide values the services depend on.
type Settings struct {
	AdminAcronym string
	Location     *time.Location
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

var contentColumns = []query.Column{
	{Key: "id", Name: "id", Match: query.Equals},
	{Key: "type", Name: "type", Match: query.Equals},
	{Key: "slug", Name: "slug", Match: query.Equals},
	{Key: "title", Name: "title", Match: query.Contains},
	{Key: "author", Name: "author", Match: query.Equals},
	{Key: "category", Name: "category", Match: query.Equals},
}

var contentSortable = map[string]string{
	"id":        "id",
	"type":      "type",
	"title":     "title",
	"author":    "author",
	"category":  "category",
	"published": "published",
	"created":   "created",
	"updated":   "updated",
}

var newsColumns = []query.Column{
	{Key: "category", Name: "category", Match: query.Equals},
	{Key: "title", Name: "title", Match: query.Contains},
	{Key: "author", Name: "author", Match: query.Equals},
}

var newsSortable = map[string]string{
	"published": "published",
	"title":     "title",
	"category":  "category",
	"author":    "author",
}

// ContentService provides business logic for pages and news posts.
type ContentService struct {
	repo     ContentRepository
	content  *search.Service[data.Content]
	news     *search.Service[data.Content]
	renderer Renderer
	settings Settings
	now      func() time.Time
}

// NewContentService creates a new ContentService. db is used for paged
// searches over the content table and the news view.
func NewContentService(repo ContentRepository, db search.Querier, renderer Renderer, settings Settings) *ContentService {
	return &ContentService{
		repo:     repo,
		content:  search.New[data.Content](db, "content", query.NewBuilder(contentColumns, contentSortable, "id")),
		news:     search.New[data.Content](db, "news", query.NewBuilder(newsColumns, newsSortable, "published")),
		renderer: renderer,
		settings: settings,
		now:      time.Now,
	}
}

// Create validates the input and stores new content authored by id.
func (s *ContentService) Create(ctx context.Context, in ContentInput, id auth.Identity) (Message, error) {
	if !id.IsAuthenticated() {
		return Message{}, ErrForbidden
	}
	if err := validateContent(in); err != nil {
		return Message{}, err
	}
	if in.Type == data.ContentTypePage && !id.IsAdmin() {
		return Message{}, ErrForbidden
	}

	now := s.now()
	c, err := s.build(in, now)
	if err != nil {
		return Message{}, err
	}
	c.Author = id.Acronym
	if id.IsAdmin() && strings.TrimSpace(in.Author) != "" {
		c.Author = strings.TrimSpace(in.Author)
	}
	c.Created = now.UTC()

	newID, err := s.repo.CreateContent(ctx, c)
	if err != nil {
		if data.IsDuplicateKey(err) {
			return Message{}, duplicateContent(err)
		}
		return Message{}, gatewayError("create content", err)
	}
	return Message{Text: "The content was saved.", ID: newID}, nil
}

// Update validates the input and rewrites the content. A non-empty
// Published value republishes soft-deleted content.
func (s *ContentService) Update(ctx context.Context, contentID int64, in ContentInput, id auth.Identity) (Message, error) {
	if err := validateContent(in); err != nil {
		return Message{}, err
	}
	existing, err := s.editable(ctx, contentID, id)
	if err != nil {
		return Message{}, err
	}
	if in.Type == data.ContentTypePage && !id.IsAdmin() {
		return Message{}, ErrForbidden
	}

	now := s.now()
	c, err := s.build(in, now)
	if err != nil {
		return Message{}, err
	}
	c.ID = existing.ID
	c.Created = existing.Created
	c.Deleted = existing.Deleted
	c.Author = existing.Author
	if id.IsAdmin() && strings.TrimSpace(in.Author) != "" {
		c.Author = strings.TrimSpace(in.Author)
	}
	updated := now.UTC()
	c.Updated = &updated

	if err := s.repo.UpdateContent(ctx, c, c.Published != nil); err != nil {
		if data.IsDuplicateKey(err) {
			return Message{}, duplicateContent(err)
		}
		return Message{}, gatewayError("update content", err)
	}
	return Message{Text: "The content was updated.", ID: c.ID}, nil
}

// SoftDelete unpublishes the content and marks it deleted. It can be
// restored by updating it with a publication date.
func (s *ContentService) SoftDelete(ctx context.Context, contentID int64, id auth.Identity) (Message, error) {
	if _, err := s.editable(ctx, contentID, id); err != nil {
		return Message{}, err
	}
	if err := s.repo.SoftDeleteContent(ctx, contentID, s.now().UTC()); err != nil {
		return Message{}, gatewayError("delete content", err)
	}
	return Message{Text: "The content was deleted.", ID: contentID}, nil
}

// HardErase permanently removes the content. Only administrators may erase.
func (s *ContentService) HardErase(ctx context.Context, contentID int64, id auth.Identity) (Message, error) {
	if !id.IsAdmin() {
		return Message{}, ErrForbidden
	}
	if err := s.repo.EraseContent(ctx, contentID); err != nil {
		return Message{}, gatewayError("erase content", err)
	}
	return Message{Text: "The content was permanently erased.", ID: contentID}, nil
}

// Get returns content for editing.
func (s *ContentService) Get(ctx context.Context, contentID int64, id auth.Identity) (*data.Content, error) {
	return s.editable(ctx, contentID, id)
}

// Search pages through all content. Users other than the administrator
// only see their own content.
func (s *ContentService) Search(ctx context.Context, p query.Params, id auth.Identity) (*search.PageResult[data.Content], error) {
	if !id.IsAuthenticated() {
		return nil, ErrForbidden
	}
	if err := requireInt(p.Filters, "id"); err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		filters := make(map[string]string, len(p.Filters)+1)
		for k, v := range p.Filters {
			filters[k] = v
		}
		filters["author"] = id.Acronym
		p.Filters = filters
	}
	res, err := s.content.Search(ctx, p)
	if err != nil {
		return nil, searchError("search content", err)
	}
	return res, nil
}

// Posts pages through the published news posts, newest first unless another
// order is requested.
func (s *ContentService) Posts(ctx context.Context, p query.Params) (*search.PageResult[data.Content], error) {
	if p.OrderBy == "" && p.Order == "" {
		p.Order = query.Desc
	}
	res, err := s.news.Search(ctx, p)
	if err != nil {
		return nil, searchError("search news", err)
	}
	return res, nil
}

// BySlug returns a published news post.
func (s *ContentService) BySlug(ctx context.Context, slug string) (*data.Content, error) {
	c, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, gatewayError("get post", err)
	}
	return c, nil
}

// TitleBySlug returns the title of a published news post.
func (s *ContentService) TitleBySlug(ctx context.Context, slug string) (string, error) {
	c, err := s.BySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	return c.Title, nil
}

// ByURL returns a published page.
func (s *ContentService) ByURL(ctx context.Context, url string) (*data.Content, error) {
	c, err := s.repo.GetPageByURL(ctx, url, s.now().UTC())
	if err != nil {
		return nil, gatewayError("get page", err)
	}
	return c, nil
}

// Categories lists the categories used by published news posts.
func (s *ContentService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, gatewayError("get categories", err)
	}
	return categories, nil
}

// Published returns every page and post that is available now.
func (s *ContentService) Published(ctx context.Context) ([]*data.Content, error) {
	contents, err := s.repo.GetPublished(ctx, s.now().UTC())
	if err != nil {
		return nil, gatewayError("get published content", err)
	}
	return contents, nil
}

// List returns all content with its availability. Administrators only.
func (s *ContentService) List(ctx context.Context, id auth.Identity) ([]ContentStatus, error) {
	if !id.IsAdmin() {
		return nil, ErrForbidden
	}
	contents, err := s.repo.GetAllContent(ctx)
	if err != nil {
		return nil, gatewayError("list content", err)
	}
	now := s.now().UTC()
	list := make([]ContentStatus, 0, len(contents))
	for _, c := range contents {
		list = append(list, ContentStatus{Content: c, Available: c.Available(now)})
	}
	return list, nil
}

// Reset replaces all content with the default news posts. Administrators only.
func (s *ContentService) Reset(ctx context.Context, id auth.Identity) (Message, error) {
	if !id.IsAdmin() {
		return Message{}, ErrForbidden
	}
	if err := s.repo.ReplaceAllContent(ctx, DefaultContent(s.settings.AdminAcronym)); err != nil {
		return Message{}, gatewayError("reset content", err)
	}
	return Message{Text: "The content was reset to its default values."}, nil
}

// Render returns the content text as HTML.
func (s *ContentService) Render(ctx context.Context, c *data.Content) (string, error) {
	version := c.Created
	if c.Updated != nil {
		version = *c.Updated
	}
	key := fmt.Sprintf("content:%d:%d", c.ID, version.UnixNano())
	return s.renderer.Render(ctx, key, c.Filter, c.Data)
}

// editable loads content that id is allowed to change.
func (s *ContentService) editable(ctx context.Context, contentID int64, id auth.Identity) (*data.Content, error) {
	if !id.IsAuthenticated() {
		return nil, ErrForbidden
	}
	c, err := s.repo.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, gatewayError("get content", err)
	}
	if !id.CanActAs(c.Author) {
		return nil, ErrForbidden
	}
	return c, nil
}

// build derives the stored record from validated input.
func (s *ContentService) build(in ContentInput, now time.Time) (*data.Content, error) {
	loc := s.settings.location()
	published, err := parsePublished(strings.TrimSpace(in.Published), now, loc)
	if err != nil {
		return nil, err
	}
	filters, _ := textfilter.Parse(in.Filter)

	c := &data.Content{
		Title:     strings.TrimSpace(in.Title),
		Slug:      Slugify(strings.TrimSpace(in.Title) + "-" + now.In(loc).Format("15:04:05")),
		Data:      in.Data,
		Type:      in.Type,
		Filter:    strings.Join(filters, ","),
		Category:  strings.TrimSpace(in.Category),
		Published: published,
	}
	if url := strings.TrimSpace(in.URL); in.Type == data.ContentTypePage && url != "" {
		c.URL = &url
	}
	return c, nil
}

// validateContent checks the mandatory fields in order and stops at the
// first problem.
func validateContent(in ContentInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is missing"}
	}
	if strings.TrimSpace(in.Data) == "" {
		return &ValidationError{Field: "data", Message: "text is missing"}
	}
	if in.Type != data.ContentTypePage && in.Type != data.ContentTypePost {
		return &ValidationError{Field: "type", Message: "type must be page or post"}
	}
	if _, err := textfilter.Parse(in.Filter); err != nil {
		return &ValidationError{Field: "filter", Message: err.Error()}
	}
	return ValidateDate(strings.TrimSpace(in.Published))
}

func duplicateContent(err error) error {
	return &ConstraintError{
		Field:   "slug",
		Message: "content with the same slug or url already exists",
		Err:     err,
	}
}
