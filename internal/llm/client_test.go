package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() domain.GenerateRequest {
	return domain.GenerateRequest{
		Model:       "google/gemini-2.0-flash-001",
		Temperature: 0.7,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "be helpful"},
			{Role: domain.RoleUser, Content: "earlier"},
			{Role: domain.RoleAssistant, Content: "reply"},
			{Role: domain.RoleUser, Content: "now", ImageURL: "https://img.example/cat.png"},
		},
	}
}

func TestNewClient_Providers(t *testing.T) {
	_, err := NewClient(ProviderOpenRouter, "", "")
	assert.Error(t, err)

	c, err := NewClient(ProviderOpenRouter, "key", "")
	require.NoError(t, err)
	assert.Equal(t, OpenRouterBaseURL, c.(*OpenAIClient).BaseURL())

	c, err = NewClient(ProviderOpenAI, "key", "http://localhost:9999/v1")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", c.(*OpenAIClient).BaseURL())

	_, err = NewClient(ProviderMock, "", "")
	assert.NoError(t, err)

	_, err = NewClient("bogus", "key", "")
	assert.Error(t, err)
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  hello there  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL)
	reply, err := c.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)
	assert.Equal(t, "google/gemini-2.0-flash-001", got["model"])
	assert.InDelta(t, 0.7, got["temperature"], 0.0001)
	assert.Len(t, got["messages"], 4)
}

func TestOpenAIClient_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrLLMAuth},
		{http.StatusTooManyRequests, domain.ErrLLMRateLimited},
		{http.StatusInternalServerError, domain.ErrLLMService},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"x"}}`))
		}))
		_, err := NewOpenAIClient("k", srv.URL).Generate(context.Background(), sampleRequest())
		srv.Close()
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestGeminiClient_Generate(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/gemini-2.0-flash-001:generateContent")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi from gemini"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("k")
	c.baseURL = srv.URL
	reply, err := c.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "hi from gemini", reply)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be helpful", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Contains(t, got.Contents[2].Parts[0].Text, "https://img.example/cat.png")
}

func TestGeminiClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewGeminiClient("k")
	c.baseURL = url
	_, err := c.Generate(context.Background(), sampleRequest())
	assert.True(t, errors.Is(err, domain.ErrLLMNetwork), "expected network error, got %v", err)
}

func TestAnthropicClient_Generate(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hi "},{"type":"text","text":"there"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("k")
	c.url = srv.URL
	reply, err := c.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, anthropicModel, got.Model)
	assert.Equal(t, "be helpful", got.System)
	assert.Len(t, got.Messages, 3)
}

func TestAnthropicClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("bad")
	c.url = srv.URL
	_, err := c.Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, domain.ErrLLMAuth)
}

func TestImageNote(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.Message
		want string
	}{
		{"no image", domain.Message{Content: "hi"}, "hi"},
		{"image only", domain.Message{ImageURL: "https://img.example/a.png"}, "[attached image: https://img.example/a.png]"},
		{"text and image", domain.Message{Content: "look", ImageURL: "https://img.example/a.png"}, "look\n[attached image: https://img.example/a.png]"},
		{"data url", domain.Message{Content: "look", ImageURL: "data:image/png;base64," + strings.Repeat("A", 4096)}, "look\n[attached image: inline data]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imageNote(tt.msg))
		})
	}
}
