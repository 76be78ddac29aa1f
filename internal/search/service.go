// Package search runs paged, filtered listings of one table or view: a data
// query and a count query sharing the same predicate.
package search

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"rental-movies/internal/paging"
	"rental-movies/internal/query"
)

// Querier is the part of *sqlx.DB the search service needs.
type Querier interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// PageResult is one page of rows plus the total number of matching rows.
type PageResult[T any] struct {
	Rows        []T `json:"rows"`
	TotalRows   int `json:"total_rows"`
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
	MaxPage     int `json:"max_page"`
}

// Service searches a single table or view. The table name is fixed at
// construction and never taken from request input.
type Service[T any] struct {
	db      Querier
	table   string
	builder *query.Builder
}

// New creates a Service for table using b for filters and ordering.
func New[T any](db Querier, table string, b *query.Builder) *Service[T] {
	return &Service[T]{db: db, table: table, builder: b}
}

// Search returns the page of rows matching p. The data and count queries are
// two separate reads, so concurrent writes can make TotalRows disagree with
// Rows; a zero count always yields an empty page.
func (s *Service[T]) Search(ctx context.Context, p query.Params) (*PageResult[T], error) {
	if p.Hits > 0 && p.Page <= 0 {
		p.Page = 1
	}

	order, err := s.builder.OrderBy(p)
	if err != nil {
		return nil, err
	}
	where := s.builder.Where(p)

	rows := []T{}
	dataSQL := "SELECT * FROM " + s.table + where.Predicate + order + query.Limit(p.Hits, p.Page)
	if err := s.db.SelectContext(ctx, &rows, dataSQL, where.Args...); err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", s.table, err)
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM " + s.table + where.Predicate
	if err := s.db.GetContext(ctx, &total, countSQL, where.Args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to count %s: %w", s.table, err)
		}
		total = 0
	}
	if total <= 0 {
		total = 0
		rows = []T{}
	}

	hits := p.Hits
	if hits < 0 {
		hits = 0
	}
	page := p.Page
	if page < 0 {
		page = 0
	}
	return &PageResult[T]{
		Rows:        rows,
		TotalRows:   total,
		PageSize:    hits,
		CurrentPage: page,
		MaxPage:     paging.MaxPage(total, hits),
	}, nil
}
