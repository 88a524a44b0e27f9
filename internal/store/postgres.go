package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps the memory state document in a single JSONB row and
// serializes writers with SELECT ... FOR UPDATE. EnsureSchema must run first
// so the row exists to be locked.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// EnsureSchema creates the state table and seeds the singleton row.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS memory_state (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			state JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create memory_state table: %w", err)
	}

	seed, err := encodeState(domain.NewMemoryState())
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO memory_state (id, state) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`,
		stateRowID, seed,
	)
	if err != nil {
		return fmt.Errorf("seed memory_state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Load(ctx context.Context) (*domain.MemoryState, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT state FROM memory_state WHERE id = $1`,
		stateRowID,
	).Scan(&raw)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load memory state: %w", err)
	}
	return decodeState(raw, "postgres", s.logger), nil
}

func (s *PostgresStore) Save(ctx context.Context, state *domain.MemoryState) error {
	b, err := encodeState(state)
	if err != nil {
		return err
	}
	return upsertState(ctx, s.db, b)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(*domain.MemoryState) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var raw []byte
		err := tx.QueryRow(ctx,
			`SELECT state FROM memory_state WHERE id = $1 FOR UPDATE`,
			stateRowID,
		).Scan(&raw)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("lock memory state: %w", err)
		}

		next, changed, err := apply(decodeState(raw, "postgres", s.logger), fn)
		if err != nil || !changed {
			return err
		}
		b, err := encodeState(next)
		if err != nil {
			return err
		}
		return upsertState(ctx, tx, b)
	})
}

type pgExecer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertState(ctx context.Context, db pgExecer, b []byte) error {
	_, err := db.Exec(ctx,
		`INSERT INTO memory_state (id, state, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
		stateRowID, b,
	)
	if err != nil {
		return fmt.Errorf("write memory state: %w", err)
	}
	return nil
}
