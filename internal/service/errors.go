package service

import (
	"errors"

	"github.com/Harshitk-cp/aurora/internal/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrFetchFailed  = errors.New("failed to fetch source")
	ErrNotFound     = errors.New("not found")
)

// UserFacingError turns a generation failure into the text shown to the
// user. Auth, rate-limit and network failures get a fixed message; any
// other error is surfaced as is.
func UserFacingError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrLLMAuth):
		return "The AI service rejected our credentials. Check the configured API key."
	case errors.Is(err, domain.ErrLLMRateLimited):
		return "The AI service is rate limiting requests. Please try again in a moment."
	case errors.Is(err, domain.ErrLLMNetwork):
		return "Could not reach the AI service. Check your network connection."
	default:
		return err.Error()
	}
}
