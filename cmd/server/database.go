package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/bloggers-api/internal/config"
	"github.com/phrazzld/bloggers-api/internal/platform/memory"
	"github.com/phrazzld/bloggers-api/internal/platform/mongo"
	"github.com/phrazzld/bloggers-api/internal/platform/postgres"
	"github.com/phrazzld/bloggers-api/internal/store"
)

type closeFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// openStores connects the storage backend selected by cfg.Database.Driver.
// The returned closeFunc releases its connections.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Stores, closeFunc, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStores(), noopClose, nil

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return store.Stores{}, nil, err
		}
		if err := executeMigration(ctx, db, logger, "up"); err != nil {
			_ = db.Close()
			return store.Stores{}, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return postgres.NewStores(db, logger), func(context.Context) error { return db.Close() }, nil

	case config.DriverMongo:
		m, err := mongo.Connect(ctx, cfg.Database.URL, cfg.Database.Name, cfg.Database.Timeout, logger)
		if err != nil {
			return store.Stores{}, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return m.Stores(), m.Close, nil

	default:
		return store.Stores{}, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// setupAppDatabase opens a PostgreSQL pool and verifies it with a ping.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)
	return db, nil
}
