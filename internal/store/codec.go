package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"go.uber.org/zap"
)

// decodeState parses a persisted document. Missing or unreadable data
// yields the empty default state instead of an error; the reset is logged
// because it discards whatever was stored before.
func decodeState(raw []byte, backend string, logger *zap.Logger) *domain.MemoryState {
	if len(raw) == 0 {
		return domain.NewMemoryState()
	}
	var s domain.MemoryState
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.Warn("persisted memory unreadable, resetting to defaults",
			zap.String("backend", backend),
			zap.Int("bytes", len(raw)),
			zap.Error(err))
		return domain.NewMemoryState()
	}
	s.Normalize()
	return &s
}

func encodeState(s *domain.MemoryState) ([]byte, error) {
	s.Normalize()
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal memory state: %w", err)
	}
	return b, nil
}

// apply runs an Update callback against a working copy. It reports whether
// the copy should be written back.
func apply(current *domain.MemoryState, fn func(*domain.MemoryState) error) (*domain.MemoryState, bool, error) {
	next := current.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, ErrNoChange) {
			return current, false, nil
		}
		return current, false, err
	}
	return next, true, nil
}
