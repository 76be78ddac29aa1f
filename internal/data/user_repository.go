package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLUserRepository stores member accounts using sqlx.
type SQLUserRepository struct {
	db *sqlx.DB
}

// NewSQLUserRepository creates a new SQLUserRepository.
func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// CreateUser inserts a new account and returns its ID. A taken acronym
// surfaces as a duplicate key error, see IsDuplicateKey.
func (r *SQLUserRepository) CreateUser(ctx context.Context, u *User) (int64, error) {
	query := `INSERT INTO users (acronym, name, info, email, password, salt, published, updated)
		VALUES (:acronym, :name, :info, :email, :password, :salt, :published, NULL)`
	res, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		return 0, fmt.Errorf("failed to execute create user query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted user id: %w", err)
	}
	return id, nil
}

// UpdateUser updates the profile of an account. The password and salt
// columns are only written when withPassword is set.
func (r *SQLUserRepository) UpdateUser(ctx context.Context, u *User, withPassword bool) error {
	query := `UPDATE users SET acronym = :acronym, name = :name, info = :info, email = :email, updated = :updated`
	if withPassword {
		query += `, password = :password, salt = :salt`
	}
	query += ` WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectRow(result, "user", u.ID)
}

// DeleteUser removes an account.
func (r *SQLUserRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return expectRow(result, "user", id)
}

// GetUserByID retrieves an account by ID.
func (r *SQLUserRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

// GetUserByAcronym retrieves an account by its acronym.
func (r *SQLUserRepository) GetUserByAcronym(ctx context.Context, acronym string) (*User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE acronym = ?`, acronym); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user '%s': %w", acronym, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by acronym: %w", err)
	}
	return &u, nil
}
