package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// stateRowID is the primary key of the single memory_state row.
const stateRowID = 1

// SQLiteStore keeps the memory state document in one SQLite row.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex // serializes read-modify-write cycles to avoid SQLITE_BUSY
	logger *zap.Logger
}

func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS memory_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		state_json TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (*domain.MemoryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := readStateRow(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return decodeState(raw, "sqlite", s.logger), nil
}

func (s *SQLiteStore) Save(ctx context.Context, state *domain.MemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := encodeState(state)
	if err != nil {
		return err
	}
	return writeStateRow(ctx, s.db, b)
}

func (s *SQLiteStore) Update(ctx context.Context, fn func(*domain.MemoryState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	raw, err := readStateRow(ctx, tx)
	if err != nil {
		return err
	}
	next, changed, err := apply(decodeState(raw, "sqlite", s.logger), fn)
	if err != nil || !changed {
		return err
	}
	b, err := encodeState(next)
	if err != nil {
		return err
	}
	if err := writeStateRow(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type sqlExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readStateRow(ctx context.Context, q sqlExecQuerier) ([]byte, error) {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT state_json FROM memory_state WHERE id = ?`, stateRowID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan memory state: %w", err)
	}
	return []byte(raw), nil
}

func writeStateRow(ctx context.Context, q sqlExecQuerier, b []byte) error {
	_, err := q.ExecContext(ctx, `
	INSERT INTO memory_state (id, state_json, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		state_json = excluded.state_json,
		updated_at = excluded.updated_at`,
		stateRowID, string(b), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert memory state: %w", err)
	}
	return nil
}
