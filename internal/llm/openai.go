package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient talks to any OpenAI-compatible chat completions API.
// OpenRouter is the default deployment target.
type OpenAIClient struct {
	client  openai.Client
	baseURL string
}

func NewOpenAIClient(apiKey, baseURL string, opts ...option.RequestOption) *OpenAIClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		// Failures surface to the caller as the turn's error.
		option.WithMaxRetries(0),
	}
	reqOpts = append(reqOpts, opts...)
	return &OpenAIClient{
		client:  openai.NewClient(reqOpts...),
		baseURL: baseURL,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", statusError("openai-compatible API", apiErr.StatusCode, apiErr.Message)
		}
		return "", transportError("openai-compatible API", err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func toOpenAIMessages(messages []domain.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			if m.ImageURL == "" {
				out = append(out, openai.UserMessage(m.Content))
				continue
			}
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, 2)
			if m.Content != "" {
				parts = append(parts, openai.TextContentPart(m.Content))
			}
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: m.ImageURL,
			}))
			out = append(out, openai.UserMessage(parts))
		}
	}
	return out
}

// BaseURL returns the API root requests are sent to.
func (c *OpenAIClient) BaseURL() string {
	return c.baseURL
}
