package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// CleanMarkup reduces an HTML document to its visible text on one line.
func CleanMarkup(raw string) string {
	text := scriptBlockRe.ReplaceAllString(raw, "")
	text = styleBlockRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// truncateRunes keeps the first n characters of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

type SourceService struct {
	repo    domain.MemoryRepository
	fetcher domain.Fetcher
	logger  *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewSourceService(repo domain.MemoryRepository, fetcher domain.Fetcher, logger *zap.Logger) *SourceService {
	return &SourceService{
		repo:    repo,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Ingest fetches url, cleans and truncates the document and registers it
// as an unverified source.
func (s *SourceService) Ingest(ctx context.Context, url string) (*domain.Source, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	raw, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("source fetch failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	src := domain.Source{
		ID:        s.newID(),
		URL:       url,
		Content:   truncateRunes(CleanMarkup(raw), domain.MaxSourceContentLength),
		Verified:  false,
		Timestamp: s.now().UTC(),
	}

	err = s.repo.Update(ctx, func(state *domain.MemoryState) error {
		state.Sources = append(state.Sources, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist source: %w", err)
	}

	s.logger.Info("source ingested",
		zap.String("source_id", src.ID),
		zap.String("url", src.URL),
		zap.Int("content_length", utf8.RuneCountInString(src.Content)))
	return &src, nil
}

func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	return state.Sources, nil
}

// SetVerified flips the verified flag. Unknown ids return ErrNotFound and
// leave the state untouched.
func (s *SourceService) SetVerified(ctx context.Context, id string, verified bool) error {
	err := s.repo.Update(ctx, func(state *domain.MemoryState) error {
		idx := state.SourceIndex(id)
		if idx < 0 {
			return store.ErrNotFound
		}
		if state.Sources[idx].Verified == verified {
			return store.ErrNoChange
		}
		state.Sources[idx].Verified = verified
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: source %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("set verified %s: %w", id, err)
	}
	s.logger.Info("source verification changed", zap.String("source_id", id), zap.Bool("verified", verified))
	return nil
}

// Delete removes the source if present. Deleting an unknown id is a no-op.
func (s *SourceService) Delete(ctx context.Context, id string) error {
	err := s.repo.Update(ctx, func(state *domain.MemoryState) error {
		idx := state.SourceIndex(id)
		if idx < 0 {
			return store.ErrNoChange
		}
		state.Sources = append(state.Sources[:idx], state.Sources[idx+1:]...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete source %s: %w", id, err)
	}
	return nil
}
