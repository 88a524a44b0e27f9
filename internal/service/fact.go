package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/llm"
	"github.com/Harshitk-cp/aurora/internal/store"
	"go.uber.org/zap"
)

const (
	// MinFactLength is the shortest extracted fact worth keeping.
	MinFactLength = 6
	// ExtractionTemperature is the sampling temperature for fact extraction.
	// It does not follow the per-chat temperature.
	ExtractionTemperature = 0.2
)

type FactService struct {
	repo      domain.MemoryRepository
	llmClient domain.LLMClient
	model     string
	logger    *zap.Logger
}

func NewFactService(repo domain.MemoryRepository, lc domain.LLMClient, model string, logger *zap.Logger) *FactService {
	return &FactService{
		repo:      repo,
		llmClient: lc,
		model:     model,
		logger:    logger,
	}
}

func (s *FactService) List(ctx context.Context) ([]string, error) {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	return state.Facts, nil
}

// Add appends fact unless an identical one is already stored. It reports
// whether anything was written.
func (s *FactService) Add(ctx context.Context, fact string) (bool, error) {
	added := false
	err := s.repo.Update(ctx, func(state *domain.MemoryState) error {
		if state.HasFact(fact) {
			return store.ErrNoChange
		}
		state.Facts = append(state.Facts, fact)
		added = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("add fact: %w", err)
	}
	return added, nil
}

// ExtractAndAdd asks the model for one fact about the user and stores it.
// Failures are logged and never returned; the boolean reports whether a new
// fact was stored.
func (s *FactService) ExtractAndAdd(ctx context.Context, userMessage string) bool {
	reply, err := s.llmClient.Generate(ctx, domain.GenerateRequest{
		Model:       s.model,
		Temperature: ExtractionTemperature,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: llm.FactExtractionPrompt},
			{Role: domain.RoleUser, Content: userMessage},
		},
	})
	if err != nil {
		s.logger.Warn("fact extraction failed", zap.Error(err))
		return false
	}

	fact := strings.TrimSpace(reply)
	if !acceptableFact(fact) {
		s.logger.Debug("no fact extracted", zap.String("reply", fact))
		return false
	}

	added, err := s.Add(ctx, fact)
	if err != nil {
		s.logger.Error("failed to persist learned fact", zap.Error(err))
		return false
	}
	if added {
		s.logger.Info("memory learned", zap.String("fact", fact))
	}
	return added
}

func acceptableFact(fact string) bool {
	if fact == llm.NoFactMarker {
		return false
	}
	if utf8.RuneCountInString(fact) < MinFactLength {
		return false
	}
	return !strings.Contains(fact, llm.NoFactMarker)
}
