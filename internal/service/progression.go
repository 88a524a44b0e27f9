package service

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"go.uber.org/zap"
)

type ProgressionSnapshot struct {
	ExperiencePoints int `json:"experiencePoints"`
	Level            int `json:"level"`
	NextLevelAt      int `json:"nextLevelAt"`
}

type ProgressionService struct {
	repo   domain.MemoryRepository
	logger *zap.Logger
}

func NewProgressionService(repo domain.MemoryRepository, logger *zap.Logger) *ProgressionService {
	return &ProgressionService{repo: repo, logger: logger}
}

// AwardTurn grants the per-turn experience and persists it.
func (s *ProgressionService) AwardTurn(ctx context.Context) (domain.Progression, error) {
	var p domain.Progression
	err := s.repo.Update(ctx, func(state *domain.MemoryState) error {
		p = state.AwardTurn()
		return nil
	})
	if err != nil {
		return domain.Progression{}, fmt.Errorf("award turn: %w", err)
	}
	if p.LeveledUp {
		s.logger.Info("level up",
			zap.Int("level", p.Level),
			zap.Int("experience_points", p.ExperiencePoints))
	}
	return p, nil
}

func (s *ProgressionService) Snapshot(ctx context.Context) (ProgressionSnapshot, error) {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return ProgressionSnapshot{}, fmt.Errorf("load progression: %w", err)
	}
	return ProgressionSnapshot{
		ExperiencePoints: state.ExperiencePoints,
		Level:            state.Level,
		NextLevelAt:      domain.LevelThreshold(state.Level),
	}, nil
}
