package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"rental-movies/internal/auth"
	"rental-movies/internal/data"
	"rental-movies/internal/query"
	"rental-movies/internal/search"
)

// UserRepository defines the database operations on member accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, u *data.User) (int64, error)
	UpdateUser(ctx context.Context, u *data.User, withPassword bool) error
	DeleteUser(ctx context.Context, id int64) error
	GetUserByID(ctx context.Context, id int64) (*data.User, error)
	GetUserByAcronym(ctx context.Context, acronym string) (*data.User, error)
}

// UserInput holds the editable fields of an account. An empty Password
// leaves the current password unchanged on update.
type UserInput struct {
	Acronym  string `json:"acronym"`
	Name     string `json:"name"`
	Info     string `json:"info"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MsgAcronymExists is reported when the chosen acronym is taken.
const MsgAcronymExists = "acronym already exists, choose another acronym"

var userColumns = []query.Column{
	{Key: "id", Name: "id", Match: query.Equals},
	{Key: "acronym", Name: "acronym", Match: query.Contains},
	{Key: "name", Name: "name", Match: query.Contains},
	{Key: "email", Name: "email", Match: query.Contains},
}

var userSortable = map[string]string{
	"id":        "id",
	"acronym":   "acronym",
	"name":      "name",
	"email":     "email",
	"published": "published",
}

// UserService provides business logic for member accounts.
type UserService struct {
	repo     UserRepository
	users    *search.Service[data.User]
	settings Settings
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, db search.Querier, settings Settings) *UserService {
	return &UserService{
		repo:     repo,
		users:    search.New[data.User](db, "users", query.NewBuilder(userColumns, userSortable, "id")),
		settings: settings,
		now:      time.Now,
	}
}

// Create registers a new account. Anyone may register, but only the
// administrator may create the administrator's account.
func (s *UserService) Create(ctx context.Context, in UserInput, id auth.Identity) (Message, error) {
	in = trimUser(in)
	if err := validateUser(in, true); err != nil {
		return Message{}, err
	}
	if in.Acronym == s.settings.AdminAcronym && !id.IsAdmin() {
		return Message{}, ErrForbidden
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return Message{}, err
	}
	hash, err := auth.HashPassword(in.Password, salt)
	if err != nil {
		return Message{}, err
	}
	published := s.now().UTC()
	u := &data.User{
		Acronym:   in.Acronym,
		Name:      in.Name,
		Info:      in.Info,
		Email:     in.Email,
		Password:  hash,
		Salt:      salt,
		Published: &published,
	}

	newID, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		if data.IsDuplicateKey(err) {
			return Message{}, &ConstraintError{Field: "acronym", Message: MsgAcronymExists, Err: err}
		}
		return Message{}, gatewayError("create user", err)
	}
	return Message{Text: "Welcome to Rental Movies. You can now log in with your acronym and password.", ID: newID}, nil
}

// Update changes an account. Users may update their own account, the
// administrator any account. The administrator's acronym cannot change.
func (s *UserService) Update(ctx context.Context, userID int64, in UserInput, id auth.Identity) (Message, error) {
	in = trimUser(in)
	if err := validateUser(in, false); err != nil {
		return Message{}, err
	}
	u, err := s.owned(ctx, userID, id)
	if err != nil {
		return Message{}, err
	}
	if u.Acronym == s.settings.AdminAcronym && in.Acronym != u.Acronym {
		return Message{}, &ValidationError{Field: "acronym", Message: "the administrator's acronym cannot be changed"}
	}

	u.Acronym = in.Acronym
	u.Name = in.Name
	u.Info = in.Info
	u.Email = in.Email
	updated := s.now().UTC()
	u.Updated = &updated

	withPassword := in.Password != ""
	if withPassword {
		if u.Salt, err = auth.NewSalt(); err != nil {
			return Message{}, err
		}
		if u.Password, err = auth.HashPassword(in.Password, u.Salt); err != nil {
			return Message{}, err
		}
	}

	if err := s.repo.UpdateUser(ctx, u, withPassword); err != nil {
		if data.IsDuplicateKey(err) {
			return Message{}, &ConstraintError{Field: "acronym", Message: MsgAcronymExists, Err: err}
		}
		return Message{}, gatewayError("update user", err)
	}
	if withPassword {
		return Message{Text: "The account was updated and a new password was set.", ID: u.ID}, nil
	}
	return Message{Text: "The account was updated.", ID: u.ID}, nil
}

// Delete removes an account. Only the administrator may delete accounts and
// the administrator's own account cannot be deleted.
func (s *UserService) Delete(ctx context.Context, userID int64, id auth.Identity) (Message, error) {
	if !id.IsAdmin() {
		return Message{}, ErrForbidden
	}
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return Message{}, gatewayError("get user", err)
	}
	if u.Acronym == s.settings.AdminAcronym {
		return Message{}, ErrForbidden
	}
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return Message{}, gatewayError("delete user", err)
	}
	return Message{Text: "The account was deleted.", ID: userID}, nil
}

// Get returns an account visible to id.
func (s *UserService) Get(ctx context.Context, userID int64, id auth.Identity) (*data.User, error) {
	return s.owned(ctx, userID, id)
}

// Search pages through all accounts. Administrators only.
func (s *UserService) Search(ctx context.Context, p query.Params, id auth.Identity) (*search.PageResult[data.User], error) {
	if !id.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := requireInt(p.Filters, "id"); err != nil {
		return nil, err
	}
	res, err := s.users.Search(ctx, p)
	if err != nil {
		return nil, searchError("search users", err)
	}
	return res, nil
}

// Authenticate checks the acronym and password and returns the identity of
// the account.
func (s *UserService) Authenticate(ctx context.Context, acronym, password string) (auth.Identity, error) {
	acronym = strings.TrimSpace(acronym)
	if acronym == "" || password == "" {
		return auth.Anonymous(), ErrInvalidCredentials
	}
	u, err := s.repo.GetUserByAcronym(ctx, acronym)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return auth.Anonymous(), ErrInvalidCredentials
		}
		return auth.Anonymous(), gatewayError("get user", err)
	}
	if !auth.CheckPassword(u.Password, password, u.Salt) {
		return auth.Anonymous(), ErrInvalidCredentials
	}
	return s.IdentityOf(u), nil
}

// Lookup returns the identity of an existing account without checking a
// password. It is used after single sign-on.
func (s *UserService) Lookup(ctx context.Context, acronym string) (auth.Identity, error) {
	u, err := s.repo.GetUserByAcronym(ctx, acronym)
	if err != nil {
		return auth.Anonymous(), gatewayError("get user", err)
	}
	return s.IdentityOf(u), nil
}

// IdentityOf returns the identity an account logs in with.
func (s *UserService) IdentityOf(u *data.User) auth.Identity {
	role := auth.RoleUser
	if u.Acronym == s.settings.AdminAcronym {
		role = auth.RoleAdmin
	}
	return auth.Identity{Role: role, Acronym: u.Acronym, Name: u.Name}
}

func (s *UserService) owned(ctx context.Context, userID int64, id auth.Identity) (*data.User, error) {
	if !id.IsAuthenticated() {
		return nil, ErrForbidden
	}
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, gatewayError("get user", err)
	}
	if !id.CanActAs(u.Acronym) {
		return nil, ErrForbidden
	}
	return u, nil
}

func trimUser(in UserInput) UserInput {
	in.Acronym = strings.TrimSpace(in.Acronym)
	in.Name = strings.TrimSpace(in.Name)
	in.Info = strings.TrimSpace(in.Info)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

func validateUser(in UserInput, requirePassword bool) error {
	if in.Acronym == "" {
		return &ValidationError{Field: "acronym", Message: "acronym is missing"}
	}
	if in.Name == "" {
		return &ValidationError{Field: "name", Message: "name is missing"}
	}
	if requirePassword && in.Password == "" {
		return &ValidationError{Field: "password", Message: "password is missing"}
	}
	return nil
}
