package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Harshitk-cp/aurora/internal/domain"
)

// statusError maps an HTTP status from a provider onto the domain error taxonomy.
func statusError(provider string, status int, body string) error {
	if len(body) > 512 {
		body = body[:512]
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrLLMAuth, provider, status, body)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrLLMRateLimited, provider, status, body)
	default:
		return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrLLMService, provider, status, body)
	}
}

// transportError classifies a failure that happened before any response arrived.
func transportError(provider string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s request failed: %w", domain.ErrLLMNetwork, provider, err)
	}
	return fmt.Errorf("%w: %s request failed: %w", domain.ErrLLMService, provider, err)
}
