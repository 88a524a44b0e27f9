package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"go.uber.org/zap"
)

// MaxSourceExcerptLength bounds each verified source injected into a turn.
const MaxSourceExcerptLength = 500

// Turn is everything the composer derives for one conversational turn.
type Turn struct {
	InstructionBlock string
	Sentiment        domain.SentimentResult
	Protocol         domain.Protocol
	Progression      domain.Progression
}

type ComposerService struct {
	repo        domain.MemoryRepository
	progression *ProgressionService
	logger      *zap.Logger
}

func NewComposerService(repo domain.MemoryRepository, ps *ProgressionService, logger *zap.Logger) *ComposerService {
	return &ComposerService{repo: repo, progression: ps, logger: logger}
}

// Compose builds the instruction block for a turn. Facts and sources are
// only read; the one state change is the progression award.
func (s *ComposerService) Compose(ctx context.Context, userMessage string, opts domain.ChatOptions) (*Turn, error) {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memory: %w", err)
	}
	memory := memorySection(state.Facts, state.VerifiedSources())

	sentiment := Classify(userMessage)
	protocol := domain.ProtocolFor(sentiment.Emotion)

	progress, err := s.progression.AwardTurn(ctx)
	if err != nil {
		return nil, err
	}

	persona := opts.SystemPrompt
	if strings.TrimSpace(persona) == "" {
		persona = defaultPersona
	}

	blocks := []string{persona}
	if memory != "" {
		blocks = append(blocks, memory)
	}
	blocks = append(blocks,
		statusLine(progress, protocol),
		protocolDirectives[protocol],
	)
	blocks = append(blocks, modeDirectives(opts)...)

	s.logger.Debug("turn composed",
		zap.String("emotion", string(sentiment.Emotion)),
		zap.String("protocol", string(protocol)),
		zap.Int("facts", len(state.Facts)),
		zap.Bool("god_mode", opts.Modes.GodMode()))

	return &Turn{
		InstructionBlock: strings.Join(blocks, "\n\n"),
		Sentiment:        sentiment,
		Protocol:         protocol,
		Progression:      progress,
	}, nil
}

func memorySection(facts []string, verified []domain.Source) string {
	var sb strings.Builder
	if len(facts) > 0 {
		sb.WriteString("LONG-TERM MEMORY:\n")
		for _, f := range facts {
			sb.WriteString("- ")
			sb.WriteString(f)
			sb.WriteString("\n")
		}
	}
	if len(verified) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("VERIFIED KNOWLEDGE:\n")
		for _, src := range verified {
			fmt.Fprintf(&sb, "[SOURCE: %s]\n%s\n", src.URL, truncateRunes(src.Content, MaxSourceExcerptLength))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func statusLine(p domain.Progression, protocol domain.Protocol) string {
	return fmt.Sprintf("%s\nSYSTEM STATUS: Level %d | XP %d | Emotional Protocol: %s",
		currentObjective, p.Level, p.ExperiencePoints, protocol)
}

func modeDirectives(opts domain.ChatOptions) []string {
	var out []string
	if opts.Modes.Reasoning {
		out = append(out, reasoningDirective)
	}
	if opts.Modes.Quantum {
		out = append(out, quantumDirective)
	}
	if opts.Modes.Creative {
		out = append(out, creativeDirective)
	}
	if opts.Modes.GodMode() {
		out = append(out, godModeDirective)
	}
	if d, ok := toneDirectives[opts.Tone]; ok {
		out = append(out, d)
	}
	if opts.SimulationDepth > 1 {
		out = append(out, fmt.Sprintf("SIMULATION DEPTH %d: Simulate %d distinct approaches internally and present only the strongest.",
			opts.SimulationDepth, opts.SimulationDepth))
	}
	return out
}
