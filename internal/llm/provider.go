package llm

import (
	"fmt"
	"strings"

	"github.com/Harshitk-cp/aurora/internal/domain"
)

// Provider constants
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	OpenAIBaseURL     = "https://api.openai.com/v1"
)

// NewClient creates an LLM client based on the provider name.
// Returns an error if the provider is unknown or the API key is empty (except for mock).
// baseURL overrides the provider default for OpenAI-compatible providers.
func NewClient(provider, apiKey, baseURL string) (domain.LLMClient, error) {
	switch provider {
	case ProviderOpenRouter:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is required for OpenRouter provider")
		}
		if baseURL == "" {
			baseURL = OpenRouterBaseURL
		}
		return NewOpenAIClient(apiKey, baseURL), nil

	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		if baseURL == "" {
			baseURL = OpenAIBaseURL
		}
		return NewOpenAIClient(apiKey, baseURL), nil

	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiClient(apiKey), nil

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return NewAnthropicClient(apiKey), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: openrouter, openai, gemini, anthropic, mock)", provider)
	}
}

// imageNote is appended to user text for providers that cannot fetch image URLs themselves.
// Inline data URLs are not repeated into the prompt.
func imageNote(m domain.Message) string {
	if m.ImageURL == "" {
		return m.Content
	}
	ref := m.ImageURL
	if strings.HasPrefix(ref, "data:") {
		ref = "inline data"
	}
	if m.Content == "" {
		return fmt.Sprintf("[attached image: %s]", ref)
	}
	return fmt.Sprintf("%s\n[attached image: %s]", m.Content, ref)
}
