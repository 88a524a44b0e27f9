package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// runRepositoryContract exercises the behavior every MemoryRepository backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) domain.MemoryRepository) {
	t.Run("empty repository loads defaults", func(t *testing.T) {
		repo := newRepo(t)
		s, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, s.Facts)
		assert.Empty(t, s.Sources)
		assert.Equal(t, 0, s.ExperiencePoints)
		assert.Equal(t, 1, s.Level)
	})

	t.Run("save then load round trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		want := domain.NewMemoryState()
		want.Facts = append(want.Facts, "User likes Go")
		want.Sources = append(want.Sources, domain.Source{ID: "s1", URL: "https://example.com", Content: "Hello", Verified: true})
		want.ExperiencePoints = 40
		want.Level = 2

		require.NoError(t, repo.Save(ctx, want))
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want.Facts, got.Facts)
		require.Len(t, got.Sources, 1)
		assert.Equal(t, "s1", got.Sources[0].ID)
		assert.True(t, got.Sources[0].Verified)
		assert.Equal(t, 40, got.ExperiencePoints)
		assert.Equal(t, 2, got.Level)
	})

	t.Run("callback error aborts write", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boom := errors.New("boom")

		err := repo.Update(ctx, func(s *domain.MemoryState) error {
			s.Facts = append(s.Facts, "should not persist")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, s.Facts)
	})

	t.Run("ErrNotFound propagates and writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Update(ctx, func(s *domain.MemoryState) error {
			s.Level = 9
			return fmt.Errorf("source x: %w", ErrNotFound)
		})
		assert.ErrorIs(t, err, ErrNotFound)

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Level)
	})

	t.Run("ErrNoChange is not an error and writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Update(ctx, func(s *domain.MemoryState) error {
			s.Facts = append(s.Facts, "discarded")
			return ErrNoChange
		})
		require.NoError(t, err)

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, s.Facts)
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		const writers = 20

		var g errgroup.Group
		for i := 0; i < writers; i++ {
			g.Go(func() error {
				return repo.Update(ctx, func(s *domain.MemoryState) error {
					s.Facts = append(s.Facts, fmt.Sprintf("fact %d", i))
					s.ExperiencePoints += 10
					return nil
				})
			})
		}
		require.NoError(t, g.Wait())

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, s.Facts, writers)
		assert.Equal(t, writers*10, s.ExperiencePoints)
	})
}
