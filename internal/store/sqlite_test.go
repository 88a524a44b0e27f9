package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "aurora.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) domain.MemoryRepository {
		return newTestSQLiteStore(t)
	})
}

func TestSQLiteStore_CorruptRowResetsToDefaults(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, writeStateRow(ctx, s.db, []byte("][")))

	state, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, state.Level)
	require.Empty(t, state.Facts)

	require.NoError(t, s.Update(ctx, func(m *domain.MemoryState) error {
		m.Facts = append(m.Facts, "User is recovering")
		return nil
	}))
	state, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"User is recovering"}, state.Facts)
}
