//go:build unit

package handler

import (
	"context"
	"net/http"

	"rental-movies/internal/auth"
	"rental-movies/internal/data"
	"rental-movies/internal/logger"
	"rental-movies/internal/middleware"
	"rental-movies/internal/query"
	"rental-movies/internal/search"
	"rental-movies/internal/service"
	"rental-movies/internal/session"
	"rental-movies/internal/view"

	"golang.org/x/oauth2"
)

// mockSessionManager is a mock implementation of the session.Manager interface.
type mockSessionManager struct {
	values        map[string]string
	destroyCalled bool
	renewCalled   bool
}

// Ensure mockSessionManager implements the session.Manager interface.
var _ session.Manager = (*mockSessionManager)(nil)

func newMockSession() *mockSessionManager {
	return &mockSessionManager{values: map[string]string{}}
}

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }
func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.values[key], _ = val.(string)
}
func (m *mockSessionManager) GetString(ctx context.Context, key string) string { return m.values[key] }
func (m *mockSessionManager) PopString(ctx context.Context, key string) string {
	v := m.values[key]
	delete(m.values, key)
	return v
}
func (m *mockSessionManager) Remove(ctx context.Context, key string) { delete(m.values, key) }
func (m *mockSessionManager) RenewToken(ctx context.Context) error {
	m.renewCalled = true
	return nil
}
func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.destroyCalled = true
	m.values = map[string]string{}
	return nil
}

// mockUserService is a mock implementation of the UserServicer interface.
type mockUserService struct {
	identity    auth.Identity
	errToReturn error
	lastAcronym string
}

var _ UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Create(ctx context.Context, in service.UserInput, id auth.Identity) (service.Message, error) {
	return service.Message{Text: "created", ID: 1}, m.errToReturn
}
func (m *mockUserService) Update(ctx context.Context, userID int64, in service.UserInput, id auth.Identity) (service.Message, error) {
	return service.Message{Text: "updated", ID: userID}, m.errToReturn
}
func (m *mockUserService) Delete(ctx context.Context, userID int64, id auth.Identity) (service.Message, error) {
	return service.Message{Text: "deleted", ID: userID}, m.errToReturn
}
func (m *mockUserService) Get(ctx context.Context, userID int64, id auth.Identity) (*data.User, error) {
	return nil, m.errToReturn
}
func (m *mockUserService) Search(ctx context.Context, p query.Params, id auth.Identity) (*search.PageResult[data.User], error) {
	return &search.PageResult[data.User]{}, m.errToReturn
}
func (m *mockUserService) Authenticate(ctx context.Context, acronym, password string) (auth.Identity, error) {
	m.lastAcronym = acronym
	if m.errToReturn != nil {
		return auth.Anonymous(), m.errToReturn
	}
	return m.identity, nil
}
func (m *mockUserService) Lookup(ctx context.Context, acronym string) (auth.Identity, error) {
	m.lastAcronym = acronym
	if m.errToReturn != nil {
		return auth.Anonymous(), m.errToReturn
	}
	return m.identity, nil
}

// stubSSO returns fixed claims for any code.
type stubSSO struct {
	claims auth.Claims
	err    error
}

func (s *stubSSO) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return "https://sso.example.com/authorize?state=" + state
}

func (s *stubSSO) ExchangeClaims(ctx context.Context, code string) (auth.Claims, error) {
	return s.claims, s.err
}

// mockContentService serves a fixed set of published content.
type mockContentService struct {
	ContentServicer
	published   []*data.Content
	posts       *search.PageResult[data.Content]
	lastParams  query.Params
	errToReturn error
}

func (m *mockContentService) Published(ctx context.Context) ([]*data.Content, error) {
	return m.published, m.errToReturn
}

func (m *mockContentService) Posts(ctx context.Context, p query.Params) (*search.PageResult[data.Content], error) {
	m.lastParams = p
	return m.posts, m.errToReturn
}

// mockMovieService serves a fixed movie list.
type mockMovieService struct {
	MovieServicer
	movies     []*data.Movie
	result     *search.PageResult[data.Movie]
	lastParams query.Params
}

func (m *mockMovieService) All(ctx context.Context) ([]*data.Movie, error) {
	return m.movies, nil
}

func (m *mockMovieService) Latest(ctx context.Context, n int) ([]*data.Movie, error) {
	return m.movies, nil
}

func (m *mockMovieService) Search(ctx context.Context, p query.Params) (*search.PageResult[data.Movie], error) {
	m.lastParams = p
	if p.OrderBy == "rating" {
		return nil, &service.ValidationError{Field: "orderby", Message: "invalid orderby value"}
	}
	return m.result, nil
}

// serve runs h through the error middleware with id in the request context.
func serve(h middleware.AppHandler, w http.ResponseWriter, r *http.Request, id auth.Identity) {
	r = r.WithContext(middleware.SetIdentity(r.Context(), id))
	middleware.Error(logger.Nop(), view.New(false))(h).ServeHTTP(w, r)
}
