package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *store.FileStore {
	t.Helper()
	repo, err := store.NewFileStore(filepath.Join(t.TempDir(), "memory.json"), zap.NewNop())
	require.NoError(t, err)
	return repo
}

func seedState(t *testing.T, repo domain.MemoryRepository, s *domain.MemoryState) {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), s))
}

func loadState(t *testing.T, repo domain.MemoryRepository) *domain.MemoryState {
	t.Helper()
	s, err := repo.Load(context.Background())
	require.NoError(t, err)
	return s
}

// fakeFetcher serves canned bodies keyed by URL.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
}

func newFakeFetcher(bodies map[string]string) *fakeFetcher {
	return &fakeFetcher{bodies: bodies}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	body, ok := f.bodies[url]
	if !ok {
		return "", errors.New("connection refused")
	}
	return body, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// recordingDispatcher captures dispatched messages synchronously.
type recordingDispatcher struct {
	mu       sync.Mutex
	messages []string
}

func (d *recordingDispatcher) Dispatch(msg string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return true
}

func (d *recordingDispatcher) Messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages...)
}
