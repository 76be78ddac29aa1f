package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLContentRepository stores pages and news posts using sqlx.
type SQLContentRepository struct {
	db *sqlx.DB
}

// NewSQLContentRepository creates a new SQLContentRepository.
func NewSQLContentRepository(db *sqlx.DB) *SQLContentRepository {
	return &SQLContentRepository{db: db}
}

const insertContentSQL = `INSERT INTO content (title, slug, url, data, type, filter, author, category, published, created, updated)
	VALUES (:title, :slug, :url, :data, :type, :filter, :author, :category, :published, :created, NULL)`

// CreateContent inserts new content and returns its ID.
func (r *SQLContentRepository) CreateContent(ctx context.Context, c *Content) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, insertContentSQL, c)
	if err != nil {
		return 0, fmt.Errorf("failed to execute create content query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted content id: %w", err)
	}
	return id, nil
}

// UpdateContent rewrites all editable columns of the content. When
// republish is set the soft-delete marker is cleared as well.
func (r *SQLContentRepository) UpdateContent(ctx context.Context, c *Content, republish bool) error {
	query := `UPDATE content SET
		title = :title, slug = :slug, url = :url, data = :data, type = :type,
		filter = :filter, author = :author, category = :category,
		published = :published, updated = :updated`
	if republish {
		query += `, deleted = NULL`
	}
	query += ` WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return expectRow(result, "content", c.ID)
}

// SoftDeleteContent unpublishes the content and stamps it as deleted at now.
func (r *SQLContentRepository) SoftDeleteContent(ctx context.Context, id int64, now time.Time) error {
	query := `UPDATE content SET published = NULL, updated = ?, deleted = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return expectRow(result, "content", id)
}

// EraseContent permanently removes the content.
func (r *SQLContentRepository) EraseContent(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM content WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to erase content: %w", err)
	}
	return expectRow(result, "content", id)
}

// GetContentByID retrieves content by ID regardless of its state.
func (r *SQLContentRepository) GetContentByID(ctx context.Context, id int64) (*Content, error) {
	var c Content
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM content WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}
	return &c, nil
}

// GetPostBySlug retrieves a published news post by its slug.
func (r *SQLContentRepository) GetPostBySlug(ctx context.Context, slug string) (*Content, error) {
	var c Content
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM news WHERE slug = ?`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with slug '%s': %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return &c, nil
}

// GetPageByURL retrieves a published, non-deleted page by its url.
func (r *SQLContentRepository) GetPageByURL(ctx context.Context, url string, now time.Time) (*Content, error) {
	var c Content
	query := `SELECT * FROM content WHERE type = ? AND url = ? AND deleted IS NULL AND published IS NOT NULL`
	if err := r.db.GetContext(ctx, &c, query, ContentTypePage, url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("page with url '%s': %w", url, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get page by url: %w", err)
	}
	if !c.Available(now) {
		return nil, fmt.Errorf("page with url '%s': %w", url, ErrNotFound)
	}
	return &c, nil
}

// GetAllContent retrieves all content, including unpublished and deleted.
func (r *SQLContentRepository) GetAllContent(ctx context.Context) ([]*Content, error) {
	var contents []*Content
	if err := r.db.SelectContext(ctx, &contents, `SELECT * FROM content ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to get all content: %w", err)
	}
	return contents, nil
}

// GetPublished retrieves all published pages and news posts.
func (r *SQLContentRepository) GetPublished(ctx context.Context, now time.Time) ([]*Content, error) {
	var contents []*Content
	query := `SELECT * FROM content WHERE deleted IS NULL AND published IS NOT NULL ORDER BY published DESC`
	if err := r.db.SelectContext(ctx, &contents, query); err != nil {
		return nil, fmt.Errorf("failed to get published content: %w", err)
	}
	available := contents[:0]
	for _, c := range contents {
		if c.Available(now) {
			available = append(available, c)
		}
	}
	return available, nil
}

// GetCategories lists the distinct categories of published news posts.
func (r *SQLContentRepository) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	query := `SELECT DISTINCT category FROM news WHERE category <> '' ORDER BY category`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// ReplaceAllContent deletes every content row and inserts contents in a
// single transaction.
func (r *SQLContentRepository) ReplaceAllContent(ctx context.Context, contents []*Content) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM content`); err != nil {
		return fmt.Errorf("failed to clear content: %w", err)
	}
	for _, c := range contents {
		if _, err := tx.NamedExecContext(ctx, insertContentSQL, c); err != nil {
			return fmt.Errorf("failed to insert content '%s': %w", c.Slug, err)
		}
	}
	return tx.Commit()
}

func expectRow(result sql.Result, what string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no %s found with id %d: %w", what, id, ErrNotFound)
	}
	return nil
}
