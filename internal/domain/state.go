package domain

import "time"

const (
	// MaxSourceContentLength bounds the cleaned text kept for a source at ingestion time.
	MaxSourceContentLength = 5000
	// InitialLevel is the level of a fresh memory state.
	InitialLevel = 1
)

// Source is an external document ingested by URL. Only verified sources
// are injected into the generation context.
type Source struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	Verified  bool      `json:"verified"`
	Timestamp time.Time `json:"timestamp"`
}

// MemoryState is the single persisted aggregate shared by facts, sources
// and progression. Every backend stores exactly this document.
type MemoryState struct {
	Facts            []string `json:"facts"`
	Sources          []Source `json:"sources"`
	ExperiencePoints int      `json:"experiencePoints"`
	Level            int      `json:"level"`
}

// NewMemoryState returns the empty default state used when nothing has been
// persisted yet or the persisted copy cannot be read.
func NewMemoryState() *MemoryState {
	return &MemoryState{
		Facts:   []string{},
		Sources: []Source{},
		Level:   InitialLevel,
	}
}

// Normalize repairs a decoded state so its invariants hold: non-nil slices,
// experiencePoints >= 0 and level >= 1. Older files that only carry "facts"
// decode into a usable state this way.
func (s *MemoryState) Normalize() {
	if s.Facts == nil {
		s.Facts = []string{}
	}
	if s.Sources == nil {
		s.Sources = []Source{}
	}
	if s.ExperiencePoints < 0 {
		s.ExperiencePoints = 0
	}
	if s.Level < InitialLevel {
		s.Level = InitialLevel
	}
}

// Clone returns a deep copy so callers can't alias repository-owned slices.
func (s *MemoryState) Clone() *MemoryState {
	c := &MemoryState{
		Facts:            make([]string, len(s.Facts)),
		Sources:          make([]Source, len(s.Sources)),
		ExperiencePoints: s.ExperiencePoints,
		Level:            s.Level,
	}
	copy(c.Facts, s.Facts)
	copy(c.Sources, s.Sources)
	return c
}

// HasFact reports whether a byte-identical fact is already stored.
func (s *MemoryState) HasFact(fact string) bool {
	for _, f := range s.Facts {
		if f == fact {
			return true
		}
	}
	return false
}

// SourceIndex returns the position of the source with the given id, or -1.
func (s *MemoryState) SourceIndex(id string) int {
	for i := range s.Sources {
		if s.Sources[i].ID == id {
			return i
		}
	}
	return -1
}

// VerifiedSources returns the verified sources in registry order.
func (s *MemoryState) VerifiedSources() []Source {
	var out []Source
	for _, src := range s.Sources {
		if src.Verified {
			out = append(out, src)
		}
	}
	return out
}
