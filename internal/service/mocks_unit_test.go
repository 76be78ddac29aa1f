//go:build unit

package service

import (
	"context"
	"time"

	"rental-movies/internal/data"
)

// mockContentRepository is a mock implementation of the ContentRepository interface.
type mockContentRepository struct {
	errToReturn      error
	contentToReturn  *data.Content
	contentsToReturn []*data.Content
	categories       []string

	createCalled  bool
	updateCalled  bool
	softCalled    bool
	eraseCalled   bool
	replaceCalled bool
	lastContent   *data.Content
	lastRepublish bool
	lastDeletedAt time.Time
	lastReplaced  []*data.Content
}

var _ ContentRepository = (*mockContentRepository)(nil)

func (m *mockContentRepository) CreateContent(ctx context.Context, c *data.Content) (int64, error) {
	m.createCalled = true
	m.lastContent = c
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	return 1, nil
}

func (m *mockContentRepository) UpdateContent(ctx context.Context, c *data.Content, republish bool) error {
	m.updateCalled = true
	m.lastContent = c
	m.lastRepublish = republish
	return m.errToReturn
}

func (m *mockContentRepository) SoftDeleteContent(ctx context.Context, id int64, now time.Time) error {
	m.softCalled = true
	m.lastDeletedAt = now
	return m.errToReturn
}

func (m *mockContentRepository) EraseContent(ctx context.Context, id int64) error {
	m.eraseCalled = true
	return m.errToReturn
}

func (m *mockContentRepository) GetContentByID(ctx context.Context, id int64) (*data.Content, error) {
	if m.contentToReturn != nil && m.contentToReturn.ID == id {
		return m.contentToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockContentRepository) GetPostBySlug(ctx context.Context, slug string) (*data.Content, error) {
	if m.contentToReturn != nil && m.contentToReturn.Slug == slug {
		return m.contentToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockContentRepository) GetPageByURL(ctx context.Context, url string, now time.Time) (*data.Content, error) {
	if m.contentToReturn != nil && m.contentToReturn.URL != nil && *m.contentToReturn.URL == url {
		return m.contentToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockContentRepository) GetAllContent(ctx context.Context) ([]*data.Content, error) {
	return m.contentsToReturn, m.errToReturn
}

func (m *mockContentRepository) GetPublished(ctx context.Context, now time.Time) ([]*data.Content, error) {
	return m.contentsToReturn, m.errToReturn
}

func (m *mockContentRepository) GetCategories(ctx context.Context) ([]string, error) {
	return m.categories, m.errToReturn
}

func (m *mockContentRepository) ReplaceAllContent(ctx context.Context, contents []*data.Content) error {
	m.replaceCalled = true
	m.lastReplaced = contents
	return m.errToReturn
}

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	errToReturn error
	users       map[int64]*data.User

	createCalled     bool
	updateCalled     bool
	deleteCalled     bool
	lastUser         *data.User
	lastWithPassword bool
}

var _ UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) CreateUser(ctx context.Context, u *data.User) (int64, error) {
	m.createCalled = true
	m.lastUser = u
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	return 7, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, u *data.User, withPassword bool) error {
	m.updateCalled = true
	m.lastUser = u
	m.lastWithPassword = withPassword
	return m.errToReturn
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id int64) error {
	m.deleteCalled = true
	return m.errToReturn
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id int64) (*data.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockUserRepository) GetUserByAcronym(ctx context.Context, acronym string) (*data.User, error) {
	for _, u := range m.users {
		if u.Acronym == acronym {
			cp := *u
			return &cp, nil
		}
	}
	return nil, data.ErrNotFound
}

// mockMovieRepository is a mock implementation of the MovieRepository interface.
type mockMovieRepository struct {
	errToReturn error
	movies      []*data.Movie
	genres      []*data.Genre
	lastN       int
}

var _ MovieRepository = (*mockMovieRepository)(nil)

func (m *mockMovieRepository) GetMovieByID(ctx context.Context, id int64) (*data.Movie, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, mv := range m.movies {
		if mv.ID == id {
			return mv, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockMovieRepository) GetLatestMovies(ctx context.Context, n int) ([]*data.Movie, error) {
	m.lastN = n
	return m.movies, m.errToReturn
}

func (m *mockMovieRepository) GetAllMovies(ctx context.Context) ([]*data.Movie, error) {
	return m.movies, m.errToReturn
}

func (m *mockMovieRepository) GetGenres(ctx context.Context) ([]*data.Genre, error) {
	return m.genres, m.errToReturn
}

// fakeQuerier records the search queries it receives and finds nothing.
type fakeQuerier struct {
	queries []string
	args    [][]interface{}
}

func (f *fakeQuerier) SelectContext(ctx context.Context, dest interface{}, q string, args ...interface{}) error {
	f.queries = append(f.queries, q)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeQuerier) GetContext(ctx context.Context, dest interface{}, q string, args ...interface{}) error {
	f.queries = append(f.queries, q)
	f.args = append(f.args, args)
	*dest.(*int) = 0
	return nil
}

// stubRenderer records the cache keys it is asked to render.
type stubRenderer struct {
	keys []string
}

func (r *stubRenderer) Render(ctx context.Context, key, filters, text string) (string, error) {
	r.keys = append(r.keys, key)
	return "<p>" + text + "</p>", nil
}
