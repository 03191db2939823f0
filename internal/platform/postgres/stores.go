package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloggers-api/internal/store"
)

// Migrations holds the goose SQL migrations for this backend.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the files.
const MigrationsDir = "migrations"

// Cleaner deletes every row from every table in one transaction.
type Cleaner struct {
	db *sql.DB
}

var _ store.Cleaner = (*Cleaner)(nil)

// NewCleaner creates a Cleaner on db.
func NewCleaner(db *sql.DB) *Cleaner {
	return &Cleaner{db: db}
}

// DeleteAll implements store.Cleaner.
func (c *Cleaner) DeleteAll(ctx context.Context) error {
	return store.RunInTransaction(ctx, c.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, table := range []string{"comments", "posts", "blogs", "users"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, MapError(err))
			}
		}
		return nil
	})
}

// NewStores wires every PostgreSQL store on db.
func NewStores(db *sql.DB, logger *slog.Logger) store.Stores {
	return store.Stores{
		Users:    NewPostgresUserStore(db, logger),
		Blogs:    NewPostgresBlogStore(db, logger),
		Posts:    NewPostgresPostStore(db, logger),
		Comments: NewPostgresCommentStore(db, logger),
		Cleaner:  NewCleaner(db),
	}
}
