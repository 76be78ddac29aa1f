// Package query turns sparse search parameters into SQL predicate, ordering
// and limit fragments. Column and table identifiers only ever come from the
// allow-lists given to the Builder; caller values are always bound through
// placeholders.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Match is the comparison used for a filterable column.
type Match int

const (
	// Equals compares with "=", used for identifiers.
	Equals Match = iota
	// Like compares with "LIKE" using the caller's own pattern (% as wildcard).
	Like
	// Contains compares with "LIKE" and wraps the value in %…%.
	Contains
	// AtLeast compares with ">=".
	AtLeast
	// AtMost compares with "<=".
	AtMost
)

func (m Match) operator() string {
	switch m {
	case Like, Contains:
		return "LIKE"
	case AtLeast:
		return ">="
	case AtMost:
		return "<="
	default:
		return "="
	}
}

// Sort directions accepted in Params.Order.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Column is one filterable column. Key is the name of the search parameter,
// Name the SQL column it is matched against.
type Column struct {
	Key   string
	Name  string
	Match Match
}

// Params is a set of search parameters. Filters holds the optional filter
// values keyed by Column.Key; empty values count as unset. Hits is the page
// size and Page the 1-based page index.
type Params struct {
	Filters map[string]string
	Hits    int
	Page    int
	OrderBy string
	Order   string
}

// Fragment is a predicate with its bound values, in placeholder order.
type Fragment struct {
	Predicate string
	Args      []interface{}
}

// InvalidSortError reports an orderby or order value outside the allow-list.
type InvalidSortError struct {
	Param string
	Value string
}

func (e *InvalidSortError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Param, e.Value)
}

// Builder builds query fragments for one entity.
type Builder struct {
	columns      []Column
	sortable     map[string]string
	defaultOrder string
}

// NewBuilder creates a Builder. columns fixes the filter order of the emitted
// predicate. sortable maps sort keys to column names; defaultOrderBy must be
// one of its keys.
func NewBuilder(columns []Column, sortable map[string]string, defaultOrderBy string) *Builder {
	if _, ok := sortable[defaultOrderBy]; !ok {
		panic(fmt.Sprintf("query: default sort key %q is not sortable", defaultOrderBy))
	}
	return &Builder{
		columns:      columns,
		sortable:     sortable,
		defaultOrder: defaultOrderBy,
	}
}

// Where builds the WHERE clause for the filters present in p.
func (b *Builder) Where(p Params) Fragment {
	var terms []string
	var args []interface{}
	for _, c := range b.columns {
		v := strings.TrimSpace(p.Filters[c.Key])
		if v == "" {
			continue
		}
		if c.Match == Contains {
			v = "%" + v + "%"
		}
		terms = append(terms, c.Name+" "+c.Match.operator()+" ?")
		args = append(args, v)
	}
	if len(terms) == 0 {
		return Fragment{}
	}
	return Fragment{
		Predicate: " WHERE " + strings.Join(terms, " AND "),
		Args:      args,
	}
}

// OrderBy builds the ORDER BY clause. An empty OrderBy uses the builder's
// default column and an empty Order sorts ascending.
func (b *Builder) OrderBy(p Params) (string, error) {
	key := strings.ToLower(strings.TrimSpace(p.OrderBy))
	if key == "" {
		key = b.defaultOrder
	}
	column, ok := b.sortable[key]
	if !ok {
		return "", &InvalidSortError{Param: "orderby", Value: p.OrderBy}
	}

	dir := strings.ToLower(strings.TrimSpace(p.Order))
	switch dir {
	case "", Asc:
		dir = "ASC"
	case Desc:
		dir = "DESC"
	default:
		return "", &InvalidSortError{Param: "order", Value: p.Order}
	}
	return " ORDER BY " + column + " " + dir, nil
}

// Limit builds the LIMIT/OFFSET clause. Non-positive hits or page values are
// ignored and yield no clause.
func Limit(hits, page int) string {
	if hits <= 0 || page <= 0 {
		return ""
	}
	return " LIMIT " + strconv.Itoa(hits) + " OFFSET " + strconv.Itoa((page-1)*hits)
}
