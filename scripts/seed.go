// Seed script for loading demo memory into the configured Aurora store.
// Run with: go run ./scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Harshitk-cp/aurora/internal/config"
	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var demoFacts = []string{
	"User is a backend engineer working with Go",
	"User prefers short, concise responses",
	"User likes dark mode",
}

var demoSources = []domain.Source{
	{
		URL:      "https://go.dev/doc/effective_go",
		Content:  "Effective Go gives tips for writing clear, idiomatic Go code. It augments the language specification and the Tour of Go.",
		Verified: true,
	},
	{
		URL:      "https://example.com/unreviewed-blog-post",
		Content:  "An unreviewed article. It stays out of the chat context until someone verifies it.",
		Verified: false,
	},
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	repo, closeRepo, err := store.Open(ctx, config.StoreConfig(), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeRepo()

	var added int
	err = repo.Update(ctx, func(s *domain.MemoryState) error {
		for _, f := range demoFacts {
			if !s.HasFact(f) {
				s.Facts = append(s.Facts, f)
				added++
			}
		}
		for _, src := range demoSources {
			if hasURL(s, src.URL) {
				continue
			}
			src.ID = uuid.NewString()
			src.Timestamp = time.Now().UTC()
			s.Sources = append(s.Sources, src)
			added++
		}
		if added == 0 {
			return store.ErrNoChange
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to seed memory: %v", err)
	}

	state, err := repo.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to reload memory: %v", err)
	}

	fmt.Println()
	fmt.Println("Seed complete!")
	fmt.Printf("  Backend:  %s\n", config.StoreBackend())
	fmt.Printf("  Added:    %d entries\n", added)
	fmt.Printf("  Facts:    %d\n", len(state.Facts))
	fmt.Printf("  Sources:  %d (%d verified)\n", len(state.Sources), len(state.VerifiedSources()))
	fmt.Printf("  Level:    %d (%d XP)\n", state.Level, state.ExperiencePoints)
}

func hasURL(s *domain.MemoryState, url string) bool {
	for _, src := range s.Sources {
		if src.URL == url {
			return true
		}
	}
	return false
}
