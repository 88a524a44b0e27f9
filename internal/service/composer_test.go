package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestComposer(t *testing.T, state *domain.MemoryState) (*ComposerService, domain.MemoryRepository) {
	t.Helper()
	repo := newTestRepo(t)
	if state != nil {
		seedState(t, repo, state)
	}
	ps := NewProgressionService(repo, zap.NewNop())
	return NewComposerService(repo, ps, zap.NewNop()), repo
}

func defaultOpts() domain.ChatOptions {
	return domain.ChatOptions{}.WithDefaults(domain.ChatDefaults{Model: "m", Temperature: 0.7})
}

func TestComposer_ExcludesUnverifiedSources(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	composer, _ := newTestComposer(t, &domain.MemoryState{
		Facts: []string{"User likes Go"},
		Sources: []domain.Source{
			{ID: "1", URL: "https://verified.example", Content: "trusted text", Verified: true, Timestamp: ts},
			{ID: "2", URL: "https://unverified.example", Content: "rumor text", Verified: false, Timestamp: ts},
		},
		Level: 1,
	})

	turn, err := composer.Compose(context.Background(), "hello", defaultOpts())
	require.NoError(t, err)

	block := turn.InstructionBlock
	assert.Contains(t, block, "LONG-TERM MEMORY:\n- User likes Go")
	assert.Contains(t, block, "[SOURCE: https://verified.example]\ntrusted text")
	assert.NotContains(t, block, "unverified.example")
	assert.NotContains(t, block, "rumor text")
}

func TestComposer_SectionOrder(t *testing.T) {
	composer, _ := newTestComposer(t, &domain.MemoryState{
		Facts: []string{"User is a chef"},
		Level: 1,
	})
	opts := defaultOpts()
	opts.Modes = domain.ModeFlags{Reasoning: true, Quantum: true, Creative: true}
	opts.SimulationDepth = 3

	turn, err := composer.Compose(context.Background(), "I hate this broken oven", opts)
	require.NoError(t, err)
	assert.Equal(t, domain.ProtocolDeEscalation, turn.Protocol)
	assert.Equal(t, domain.EmotionAnger, turn.Sentiment.Emotion)

	block := turn.InstructionBlock
	markers := []string{
		"You are Aurora",
		"LONG-TERM MEMORY:",
		"Current Objective: Assist the user efficiently.",
		"SYSTEM STATUS: Level 1 | XP 10 | Emotional Protocol: DE-ESCALATION",
		protocolDirectives[domain.ProtocolDeEscalation],
		"DEEP REASONING MODE ACTIVATED",
		"QUANTUM MODE ACTIVATED",
		"CREATIVE MODE ACTIVATED",
		"GOD MODE OVERRIDE",
		"TONE: Professional",
		"SIMULATION DEPTH 3",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(block, m)
		require.GreaterOrEqual(t, idx, 0, "missing %q", m)
		assert.Greater(t, idx, last, "%q out of order", m)
		last = idx
	}
}

func TestComposer_ModeFlagsIndependent(t *testing.T) {
	composer, _ := newTestComposer(t, nil)
	opts := defaultOpts()
	opts.Modes.Quantum = true

	turn, err := composer.Compose(context.Background(), "hi", opts)
	require.NoError(t, err)
	assert.Contains(t, turn.InstructionBlock, "QUANTUM MODE ACTIVATED")
	assert.NotContains(t, turn.InstructionBlock, "CREATIVE MODE ACTIVATED")
	assert.NotContains(t, turn.InstructionBlock, "GOD MODE OVERRIDE")
	assert.NotContains(t, turn.InstructionBlock, "DEEP REASONING")
	assert.NotContains(t, turn.InstructionBlock, "SIMULATION DEPTH")
}

func TestComposer_SystemPromptOverride(t *testing.T) {
	composer, _ := newTestComposer(t, nil)
	opts := defaultOpts()
	opts.SystemPrompt = "You are a pirate."

	turn, err := composer.Compose(context.Background(), "hi", opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(turn.InstructionBlock, "You are a pirate."))
	assert.NotContains(t, turn.InstructionBlock, "You are Aurora")
	assert.NotContains(t, turn.InstructionBlock, "LONG-TERM MEMORY")
}

func TestComposer_TruncatesSourceExcerpt(t *testing.T) {
	content := strings.Repeat("a", MaxSourceExcerptLength) + "TAIL"
	composer, _ := newTestComposer(t, &domain.MemoryState{
		Sources: []domain.Source{{ID: "1", URL: "https://x.example", Content: content, Verified: true}},
		Level:   1,
	})

	turn, err := composer.Compose(context.Background(), "hi", defaultOpts())
	require.NoError(t, err)
	assert.Contains(t, turn.InstructionBlock, strings.Repeat("a", MaxSourceExcerptLength))
	assert.NotContains(t, turn.InstructionBlock, "TAIL")
}

func TestComposer_OnlyProgressionChanges(t *testing.T) {
	initial := &domain.MemoryState{
		Facts:            []string{"User likes tea"},
		Sources:          []domain.Source{{ID: "1", URL: "https://x.example", Content: "c", Verified: false, Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}},
		ExperiencePoints: 95,
		Level:            1,
	}
	composer, repo := newTestComposer(t, initial)

	turn, err := composer.Compose(context.Background(), "thanks!", defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, domain.Progression{ExperiencePoints: 105, Level: 2, LeveledUp: true}, turn.Progression)

	after := loadState(t, repo)
	assert.Equal(t, initial.Facts, after.Facts)
	assert.Equal(t, initial.Sources, after.Sources)
	assert.Equal(t, 105, after.ExperiencePoints)
	assert.Equal(t, 2, after.Level)
}
