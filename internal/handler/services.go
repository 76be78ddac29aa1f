package handler

import (
	"context"

	"rental-movies/internal/auth"
	"rental-movies/internal/data"
	"rental-movies/internal/query"
	"rental-movies/internal/search"
	"rental-movies/internal/service"
)

// MovieServicer is the movie catalogue as seen by the handlers.
type MovieServicer interface {
	Search(ctx context.Context, p query.Params) (*search.PageResult[data.Movie], error)
	Get(ctx context.Context, id int64) (*data.Movie, error)
	Latest(ctx context.Context, n int) ([]*data.Movie, error)
	All(ctx context.Context) ([]*data.Movie, error)
	Genres(ctx context.Context) ([]*data.Genre, error)
}

// ContentServicer defines the content operations used by the handlers.
type ContentServicer interface {
	Create(ctx context.Context, in service.ContentInput, id auth.Identity) (service.Message, error)
	Update(ctx context.Context, contentID int64, in service.ContentInput, id auth.Identity) (service.Message, error)
	SoftDelete(ctx context.Context, contentID int64, id auth.Identity) (service.Message, error)
	HardErase(ctx context.Context, contentID int64, id auth.Identity) (service.Message, error)
	Get(ctx context.Context, contentID int64, id auth.Identity) (*data.Content, error)
	Search(ctx context.Context, p query.Params, id auth.Identity) (*search.PageResult[data.Content], error)
	Posts(ctx context.Context, p query.Params) (*search.PageResult[data.Content], error)
	BySlug(ctx context.Context, slug string) (*data.Content, error)
	ByURL(ctx context.Context, url string) (*data.Content, error)
	Categories(ctx context.Context) ([]string, error)
	Published(ctx context.Context) ([]*data.Content, error)
	List(ctx context.Context, id auth.Identity) ([]service.ContentStatus, error)
	Reset(ctx context.Context, id auth.Identity) (service.Message, error)
	Render(ctx context.Context, c *data.Content) (string, error)
}

// UserServicer defines the account operations used by the handlers.
type UserServicer interface {
	Create(ctx context.Context, in service.UserInput, id auth.Identity) (service.Message, error)
	Update(ctx context.Context, userID int64, in service.UserInput, id auth.Identity) (service.Message, error)
	Delete(ctx context.Context, userID int64, id auth.Identity) (service.Message, error)
	Get(ctx context.Context, userID int64, id auth.Identity) (*data.User, error)
	Search(ctx context.Context, p query.Params, id auth.Identity) (*search.PageResult[data.User], error)
	Authenticate(ctx context.Context, acronym, password string) (auth.Identity, error)
	Lookup(ctx context.Context, acronym string) (auth.Identity, error)
}

var (
	_ MovieServicer   = (*service.MovieService)(nil)
	_ ContentServicer = (*service.ContentService)(nil)
	_ UserServicer    = (*service.UserService)(nil)
)
