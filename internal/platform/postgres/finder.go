package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloggers-api/internal/platform/logger"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// maxPrealloc bounds the result capacity reserved up front; Limit comes
// from the client and has no upper bound.
const maxPrealloc = 64

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// finder implements query.Finder for one table.
type finder[T any] struct {
	db         store.DBTX
	logger     *slog.Logger
	entity     string
	table      string
	selectCols string
	columns    columnMap
	scan       func(rowScanner) (*T, error)
}

// Find implements query.Finder.
func (f *finder[T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	log := logger.FromContextOrDefault(ctx, f.logger)

	stmt, args, err := selectPage(f.table, f.selectCols, f.columns, q)
	if err != nil {
		return nil, store.NewStoreError(f.entity, "find", "unsupported query", err)
	}

	rows, err := f.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("list query failed",
			slog.String("error", err.Error()),
			slog.String("table", f.table))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]T, 0, min(q.Limit, maxPrealloc))
	for rows.Next() {
		item, err := f.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", f.entity, err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("list query executed",
		slog.String("table", f.table),
		slog.Int64("skip", q.Skip),
		slog.Int("rows", len(out)))
	return out, nil
}

// Count implements query.Finder.
func (f *finder[T]) Count(ctx context.Context, p query.Predicate) (int64, error) {
	stmt, args, err := selectCount(f.table, f.columns, p)
	if err != nil {
		return 0, store.NewStoreError(f.entity, "count", "unsupported query", err)
	}

	var n int64
	if err := f.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, f.logger).Error("count query failed",
			slog.String("error", err.Error()),
			slog.String("table", f.table))
		return 0, MapError(err)
	}
	return n, nil
}

// getOne runs a single-row query and maps sql.ErrNoRows to notFound.
func (f *finder[T]) getOne(ctx context.Context, notFound error, stmt string, args ...any) (*T, error) {
	item, err := f.scan(f.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if IsNotFound(err) {
			return nil, notFound
		}
		return nil, MapError(err)
	}
	return item, nil
}

// exec runs a write statement and reports notFound when nothing changed.
func (f *finder[T]) exec(ctx context.Context, notFound error, stmt string, args ...any) error {
	result, err := f.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, notFound)
}
