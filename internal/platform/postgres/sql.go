package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// columnMap maps storage paths to SQL column names. Only mapped paths may
// appear in a WHERE or ORDER BY clause, so column names are never taken from
// user input.
type columnMap map[string]string

func (m columnMap) column(path string) (string, error) {
	col, ok := m[path]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", store.ErrInvalidEntity, path)
	}
	return col, nil
}

// whereBuilder accumulates positional arguments while translating predicates.
type whereBuilder struct {
	columns columnMap
	args    []any
}

func (b *whereBuilder) placeholder(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// build returns the SQL condition for p. MatchAll yields "TRUE".
func (b *whereBuilder) build(p query.Predicate) (string, error) {
	switch c := p.(type) {
	case nil, query.MatchAll:
		return "TRUE", nil
	case query.FieldEquals:
		col, err := b.columns.column(c.Field)
		if err != nil {
			return "", err
		}
		return col + " = " + b.placeholder(c.Value), nil
	case query.FieldContains:
		col, err := b.columns.column(c.Field)
		if err != nil {
			return "", err
		}
		return "strpos(lower(" + col + "::text), lower(" + b.placeholder(c.Value) + ")) > 0", nil
	case query.Or:
		if len(c.Terms) == 0 {
			return "FALSE", nil
		}
		parts := make([]string, 0, len(c.Terms))
		for _, term := range c.Terms {
			part, err := b.build(term)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	default:
		return "", fmt.Errorf("%w: unsupported predicate %T", store.ErrInvalidEntity, p)
	}
}

// orderBy returns the ORDER BY expression for s with id as a tie-breaker in
// the same direction.
func orderBy(columns columnMap, s query.Sort) (string, error) {
	col, err := columns.column(s.Field)
	if err != nil {
		return "", err
	}
	dir := "DESC"
	if s.Direction == query.Ascending {
		dir = "ASC"
	}
	if col == "id" {
		return "id " + dir, nil
	}
	return col + " " + dir + ", id " + dir, nil
}

// selectPage builds the SELECT statement for one page of a list query.
func selectPage(table, selectCols string, columns columnMap, q query.Query) (string, []any, error) {
	b := &whereBuilder{columns: columns}
	where, err := b.build(q.Predicate)
	if err != nil {
		return "", nil, err
	}
	order, err := orderBy(columns, q.Sort)
	if err != nil {
		return "", nil, err
	}

	limit := b.placeholder(q.Limit)
	offset := b.placeholder(q.Skip)
	stmt := "SELECT " + selectCols + " FROM " + table +
		" WHERE " + where +
		" ORDER BY " + order +
		" LIMIT " + limit + " OFFSET " + offset
	return stmt, b.args, nil
}

// selectCount builds the COUNT statement for a list query.
func selectCount(table string, columns columnMap, p query.Predicate) (string, []any, error) {
	b := &whereBuilder{columns: columns}
	where, err := b.build(p)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM " + table + " WHERE " + where, b.args, nil
}
