package llm

import (
	"context"
	"sync"

	"github.com/Harshitk-cp/aurora/internal/domain"
)

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what Generate returns. It is safe for
// concurrent use because background extraction calls it from worker goroutines.
type MockClient struct {
	mu sync.Mutex

	GenerateResponse string
	GenerateError    error
	// GenerateFunc, when set, takes precedence over the static fields.
	GenerateFunc func(ctx context.Context, req domain.GenerateRequest) (string, error)

	// Call tracking for assertions
	GenerateCalls []domain.GenerateRequest
}

func NewMockClient() *MockClient {
	return &MockClient{
		GenerateResponse: "Mock reply",
	}
}

func (c *MockClient) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	c.mu.Lock()
	c.GenerateCalls = append(c.GenerateCalls, req)
	fn, resp, err := c.GenerateFunc, c.GenerateResponse, c.GenerateError
	c.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return "", err
	}
	return resp, nil
}

// Calls returns a copy of the recorded requests.
func (c *MockClient) Calls() []domain.GenerateRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.GenerateRequest, len(c.GenerateCalls))
	copy(out, c.GenerateCalls)
	return out
}

// Reset clears all recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GenerateResponse = "Mock reply"
	c.GenerateError = nil
	c.GenerateFunc = nil
	c.GenerateCalls = nil
}
