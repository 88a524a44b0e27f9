package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"go.uber.org/zap"
)

// FileStore keeps the memory state in a single JSON file. All access is
// serialized by a process-wide mutex and writes go through a temp file +
// rename so a crash never leaves a half-written document behind.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("file store: create directory %s: %w", dir, err)
		}
	}
	return &FileStore{path: path, logger: logger}, nil
}

func (s *FileStore) Load(_ context.Context) (*domain.MemoryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Save(_ context.Context, state *domain.MemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(state)
}

func (s *FileStore) Update(_ context.Context, fn func(*domain.MemoryState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	next, changed, err := apply(current, fn)
	if err != nil || !changed {
		return err
	}
	return s.write(next)
}

func (s *FileStore) read() (*domain.MemoryState, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewMemoryState(), nil
	}
	if err != nil {
		s.logger.Warn("memory file unreadable, resetting to defaults",
			zap.String("path", s.path), zap.Error(err))
		return domain.NewMemoryState(), nil
	}
	return decodeState(b, "file", s.logger), nil
}

func (s *FileStore) write(state *domain.MemoryState) error {
	b, err := encodeState(state)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("file store: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("file store: rename %s: %w", s.path, err)
	}
	return nil
}
