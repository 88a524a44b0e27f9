package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// OpenConfig selects and locates a backend. Only the fields of the chosen
// backend are read.
type OpenConfig struct {
	Backend     string
	FilePath    string
	SQLitePath  string
	DatabaseURL string
}

// Open builds the configured MemoryRepository. The returned function
// releases its resources and is safe to call once.
func Open(ctx context.Context, cfg OpenConfig, logger *zap.Logger) (domain.MemoryRepository, func(), error) {
	switch cfg.Backend {
	case BackendFile:
		fs, err := NewFileStore(cfg.FilePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file memory store", zap.String("path", cfg.FilePath))
		return fs, func() {}, nil

	case BackendSQLite:
		ss, err := NewSQLiteStore(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite memory store", zap.String("path", cfg.SQLitePath))
		return ss, func() { _ = ss.Close() }, nil

	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres backend")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		ps := NewPostgresStore(pool, logger)
		if err := ps.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("connected to database")
		return ps, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (valid options: file, sqlite, postgres)", cfg.Backend)
	}
}
