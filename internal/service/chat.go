package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"go.uber.org/zap"
)

const (
	// MinLearnableLength is the message length above which extraction runs.
	MinLearnableLength = 10
	// EmptyReply is returned when the model produces no text.
	EmptyReply = "No response."
)

// Dispatcher hands a finished turn's message to background learning.
type Dispatcher interface {
	Dispatch(userMessage string) bool
}

type ChatRequest struct {
	Message  string
	ImageURL string
	History  []domain.Message
	Options  domain.ChatOptions
}

type ChatResult struct {
	Reply            string          `json:"reply"`
	ExperiencePoints int             `json:"experiencePoints"`
	Level            int             `json:"level"`
	LeveledUp        bool            `json:"leveledUp"`
	Protocol         domain.Protocol `json:"protocol"`
}

type ChatService struct {
	composer   *ComposerService
	llmClient  domain.LLMClient
	dispatcher Dispatcher
	defaults   domain.ChatDefaults
	logger     *zap.Logger
}

func NewChatService(cs *ComposerService, lc domain.LLMClient, d Dispatcher, defaults domain.ChatDefaults, logger *zap.Logger) *ChatService {
	return &ChatService{
		composer:   cs,
		llmClient:  lc,
		dispatcher: d,
		defaults:   defaults,
		logger:     logger,
	}
}

// Chat runs one turn: compose, generate, then hand the message to the
// learner. Generation errors are returned unchanged in kind so callers can
// classify them with errors.Is.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	opts, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	turn, err := s.composer.Compose(ctx, req.Message, opts)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(req.History)+2)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: turn.InstructionBlock})
	for _, m := range req.History {
		msg := domain.Message{Role: m.Role, Content: m.Content}
		if m.Role == domain.RoleUser {
			msg.ImageURL = m.ImageURL
		}
		messages = append(messages, msg)
	}
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: req.Message, ImageURL: req.ImageURL})

	reply, err := s.llmClient.Generate(ctx, domain.GenerateRequest{
		Messages:    messages,
		Model:       opts.Model,
		Temperature: opts.TemperatureValue(),
	})
	if err != nil {
		s.logger.Error("generation failed", zap.String("model", opts.Model), zap.Error(err))
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = EmptyReply
	}

	if s.dispatcher != nil && utf8.RuneCountInString(req.Message) > MinLearnableLength {
		s.dispatcher.Dispatch(req.Message)
	}

	return &ChatResult{
		Reply:            reply,
		ExperiencePoints: turn.Progression.ExperiencePoints,
		Level:            turn.Progression.Level,
		LeveledUp:        turn.Progression.LeveledUp,
		Protocol:         turn.Protocol,
	}, nil
}

func (s *ChatService) validate(req ChatRequest) (domain.ChatOptions, error) {
	if strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.ImageURL) == "" {
		return domain.ChatOptions{}, fmt.Errorf("%w: message or image_url is required", ErrInvalidInput)
	}
	for i, m := range req.History {
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			return domain.ChatOptions{}, fmt.Errorf("%w: history[%d] has unsupported role %q", ErrInvalidInput, i, m.Role)
		}
	}
	opts := req.Options.WithDefaults(s.defaults)
	if err := opts.Validate(); err != nil {
		return domain.ChatOptions{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return opts, nil
}
