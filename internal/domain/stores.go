package domain

import (
	"context"
	"errors"
)

// MemoryRepository persists the MemoryState aggregate.
//
// Update applies fn to the current state and writes the whole result as one
// atomic read-modify-write cycle; concurrent Updates never lose each other's
// changes. If fn returns an error nothing is written.
type MemoryRepository interface {
	Load(ctx context.Context) (*MemoryState, error)
	Save(ctx context.Context, s *MemoryState) error
	Update(ctx context.Context, fn func(s *MemoryState) error) error
}

// Fetcher retrieves the raw body of a remote document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// LLMClient is the external text-generation service.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Generation failures. Clients wrap one of these so callers can use errors.Is.
var (
	ErrLLMAuth        = errors.New("llm: authentication failed")
	ErrLLMRateLimited = errors.New("llm: rate limit exceeded")
	ErrLLMNetwork     = errors.New("llm: network unreachable")
	ErrLLMService     = errors.New("llm: service error")
)
