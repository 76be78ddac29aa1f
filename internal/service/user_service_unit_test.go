//go:build unit

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-movies/internal/auth"
	"rental-movies/internal/data"
	"rental-movies/internal/query"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repo *mockUserRepository) (*UserService, *fakeQuerier) {
	q := &fakeQuerier{}
	s := NewUserService(repo, q, Settings{AdminAcronym: "admin", Location: testZone})
	s.now = func() time.Time { return testNow }
	return s, q
}

func hashedUser(t *testing.T, id int64, acronym, password string) *data.User {
	t.Helper()
	salt, err := auth.NewSalt()
	require.NoError(t, err)
	hash, err := auth.HashPassword(password, salt)
	require.NoError(t, err)
	return &data.User{ID: id, Acronym: acronym, Name: acronym, Password: hash, Salt: salt}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &mockUserRepository{}
		s, _ := newTestUserService(repo)

		msg, err := s.Create(ctx, UserInput{Acronym: " doe ", Name: "John Doe", Password: "secret"}, anonymous)
		require.NoError(t, err)
		assert.Equal(t, int64(7), msg.ID)

		u := repo.lastUser
		require.NotNil(t, u)
		assert.Equal(t, "doe", u.Acronym)
		assert.NotEmpty(t, u.Salt)
		assert.NotEqual(t, "secret", u.Password)
		assert.True(t, auth.CheckPassword(u.Password, "secret", u.Salt))
		require.NotNil(t, u.Published)
		assert.True(t, u.Published.Equal(testNow))
	})

	t.Run("duplicate acronym", func(t *testing.T) {
		repo := &mockUserRepository{errToReturn: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'doe'"}}
		s, _ := newTestUserService(repo)

		msg, err := s.Create(ctx, UserInput{Acronym: "doe", Name: "John Doe", Password: "secret"}, anonymous)
		var constraintErr *ConstraintError
		require.ErrorAs(t, err, &constraintErr)
		assert.Equal(t, MsgAcronymExists, constraintErr.Error())
		assert.Equal(t, "acronym", constraintErr.Field)
		assert.Empty(t, msg.Text)
		assert.False(t, repo.updateCalled)
	})

	t.Run("administrator acronym is reserved", func(t *testing.T) {
		repo := &mockUserRepository{}
		s, _ := newTestUserService(repo)

		_, err := s.Create(ctx, UserInput{Acronym: "admin", Name: "Mallory", Password: "secret"}, anonymous)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.False(t, repo.createCalled)
	})

	t.Run("other database failure", func(t *testing.T) {
		repo := &mockUserRepository{errToReturn: &mysql.MySQLError{Number: 1045, Message: "Access denied"}}
		s, _ := newTestUserService(repo)

		_, err := s.Create(ctx, UserInput{Acronym: "doe", Name: "John Doe", Password: "secret"}, anonymous)
		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Contains(t, gwErr.Error(), "Access denied")
	})

	missing := []struct {
		name  string
		in    UserInput
		field string
	}{
		{"acronym", UserInput{Name: "n", Password: "p"}, "acronym"},
		{"name", UserInput{Acronym: "a", Password: "p"}, "name"},
		{"password", UserInput{Acronym: "a", Name: "n"}, "password"},
		{"first missing wins", UserInput{}, "acronym"},
	}
	for _, tc := range missing {
		t.Run("missing "+tc.name, func(t *testing.T) {
			repo := &mockUserRepository{}
			s, _ := newTestUserService(repo)

			_, err := s.Create(ctx, tc.in, anonymous)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.False(t, repo.createCalled)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	users := func() map[int64]*data.User {
		return map[int64]*data.User{
			1: {ID: 1, Acronym: "admin", Name: "Administrator", Password: "h1", Salt: "s1"},
			2: {ID: 2, Acronym: "doe", Name: "John Doe", Password: "h2", Salt: "s2"},
		}
	}

	t.Run("own profile without password", func(t *testing.T) {
		repo := &mockUserRepository{users: users()}
		s, _ := newTestUserService(repo)

		msg, err := s.Update(ctx, 2, UserInput{Acronym: "doe", Name: "Johnny", Email: "j@example.com"}, doeID)
		require.NoError(t, err)
		assert.Equal(t, "The account was updated.", msg.Text)
		assert.False(t, repo.lastWithPassword)
		assert.Equal(t, "Johnny", repo.lastUser.Name)
		assert.Equal(t, "h2", repo.lastUser.Password)
	})

	t.Run("new password gets a new salt", func(t *testing.T) {
		repo := &mockUserRepository{users: users()}
		s, _ := newTestUserService(repo)

		_, err := s.Update(ctx, 2, UserInput{Acronym: "doe", Name: "John Doe", Password: "new"}, doeID)
		require.NoError(t, err)
		assert.True(t, repo.lastWithPassword)
		assert.NotEqual(t, "s2", repo.lastUser.Salt)
		assert.True(t, auth.CheckPassword(repo.lastUser.Password, "new", repo.lastUser.Salt))
	})

	t.Run("duplicate acronym", func(t *testing.T) {
		repo := &mockUserRepository{users: users(), errToReturn: &mysql.MySQLError{Number: 1062}}
		s, _ := newTestUserService(repo)

		_, err := s.Update(ctx, 2, UserInput{Acronym: "taken", Name: "John Doe"}, doeID)
		var constraintErr *ConstraintError
		require.ErrorAs(t, err, &constraintErr)
		assert.Equal(t, MsgAcronymExists, constraintErr.Message)
	})

	t.Run("admin acronym is locked", func(t *testing.T) {
		repo := &mockUserRepository{users: users()}
		s, _ := newTestUserService(repo)

		_, err := s.Update(ctx, 1, UserInput{Acronym: "root", Name: "Administrator"}, adminID)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.False(t, repo.updateCalled)
	})

	t.Run("other user's profile", func(t *testing.T) {
		repo := &mockUserRepository{users: users()}
		s, _ := newTestUserService(repo)

		_, err := s.Update(ctx, 1, UserInput{Acronym: "admin", Name: "x"}, doeID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.False(t, repo.updateCalled)
	})

	t.Run("missing name", func(t *testing.T) {
		repo := &mockUserRepository{users: users()}
		s, _ := newTestUserService(repo)

		_, err := s.Update(ctx, 2, UserInput{Acronym: "doe"}, doeID)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	users := map[int64]*data.User{
		1: {ID: 1, Acronym: "admin"},
		2: {ID: 2, Acronym: "doe"},
	}

	repo := &mockUserRepository{users: users}
	s, _ := newTestUserService(repo)

	_, err := s.Delete(ctx, 2, doeID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.Delete(ctx, 1, adminID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, repo.deleteCalled)

	_, err = s.Delete(ctx, 9, adminID)
	assert.ErrorIs(t, err, ErrNotFound)

	msg, err := s.Delete(ctx, 2, adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), msg.ID)
	assert.True(t, repo.deleteCalled)
}

func TestUserService_Search(t *testing.T) {
	s, q := newTestUserService(&mockUserRepository{})
	p := query.Params{Filters: map[string]string{"acronym": "do"}, OrderBy: "name", Order: "desc", Hits: 4, Page: 1}

	_, err := s.Search(context.Background(), p, doeID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.Search(context.Background(), p, adminID)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE acronym LIKE ? ORDER BY name DESC LIMIT 4 OFFSET 0", q.queries[0])
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE acronym LIKE ?", q.queries[1])

	_, err = s.Search(context.Background(), query.Params{Order: "sideways"}, adminID)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "order", vErr.Field)

	_, err = s.Search(context.Background(), query.Params{Filters: map[string]string{"id": "one"}}, adminID)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "id", vErr.Field)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{users: map[int64]*data.User{
		1: hashedUser(t, 1, "admin", "admin"),
		2: hashedUser(t, 2, "doe", "doe"),
	}}
	s, _ := newTestUserService(repo)

	id, err := s.Authenticate(ctx, "doe", "doe")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, id.Role)
	assert.Equal(t, "doe", id.Acronym)

	id, err = s.Authenticate(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())

	for _, tc := range []struct{ acronym, password string }{
		{"doe", "wrong"},
		{"nobody", "doe"},
		{"", ""},
	} {
		id, err := s.Authenticate(ctx, tc.acronym, tc.password)
		assert.True(t, errors.Is(err, ErrInvalidCredentials), "acronym %q: got %v", tc.acronym, err)
		assert.False(t, id.IsAuthenticated())
	}
}
