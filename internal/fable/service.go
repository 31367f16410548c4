// Package fable orchestrates the full facts-to-story pipeline: generate
// a narrative, build the character deck, and illustrate it.
package fable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/deck"
	"github.com/fabula-app/fabula/internal/imagegen"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/story"
)

// Options configures a Service.
type Options struct {
	// MaxConcurrent caps parallel image requests during Build. Zero
	// means unbounded.
	MaxConcurrent int

	// StoryDir, when set, is where per-story illustration folders are
	// created. Empty disables saving to disk.
	StoryDir string
}

// Service ties the narrative generator, the image provider, and the
// coin ledger together.
type Service struct {
	generator *story.Generator
	images    imagegen.Provider
	ledger    *coins.Ledger
	events    store.EventRepo
	opts      Options
}

// NewService assembles a Service. events may be nil to disable
// history recording.
func NewService(g *story.Generator, images imagegen.Provider, ledger *coins.Ledger, events store.EventRepo, opts Options) *Service {
	return &Service{
		generator: g,
		images:    images,
		ledger:    ledger,
		events:    events,
		opts:      opts,
	}
}

// StoryResult is a generated story with its deck and the coin award
// that telling it earned.
type StoryResult struct {
	Story *story.Story
	Deck  *deck.Deck
	Award coins.Award
}

// BeginStory generates the narrative and the unilluminated deck. The
// story coin reward is granted exactly once, on narrative success; a
// failed generation earns nothing.
func (s *Service) BeginStory(ctx context.Context, facts string) (*StoryResult, error) {
	st, err := s.generator.Generate(ctx, facts)
	if err != nil {
		return nil, err
	}

	award, err := s.ledger.Award(ctx, coins.KindStory)
	if err != nil {
		return nil, fmt.Errorf("fable: award story coins: %w", err)
	}

	return &StoryResult{
		Story: st,
		Deck:  deck.NewFromStory(st),
		Award: award,
	}, nil
}

// Illustrate renders the image for one card of a previously begun
// story. Used by interactive callers that fan out per card.
func (s *Service) Illustrate(ctx context.Context, d *deck.Deck, i int) error {
	return deck.Illustrate(ctx, d, s.images, i, s.storyDir(d.StoryID()))
}

// Build runs the whole pipeline: narrative, deck, and a settled batch
// of illustrations. Individual illustration failures are reported in
// the results but never abort the batch.
func (s *Service) Build(ctx context.Context, facts string) (*StoryResult, []deck.Result, error) {
	res, err := s.BeginStory(ctx, facts)
	if err != nil {
		return nil, nil, err
	}

	results := deck.IllustrateAll(ctx, res.Deck, s.images, deck.IllustrateOptions{
		MaxConcurrent: s.opts.MaxConcurrent,
		SaveDir:       s.storyDir(res.Story.ID),
	})

	s.recordStory(ctx, res)
	return res, results, nil
}

// RecordStory appends a story event to history. Interactive callers
// invoke it after their illustration fan-out settles; Build does it
// itself.
func (s *Service) RecordStory(ctx context.Context, res *StoryResult) {
	s.recordStory(ctx, res)
}

func (s *Service) recordStory(ctx context.Context, res *StoryResult) {
	if s.events == nil {
		return
	}
	err := s.events.AppendStoryEvent(ctx, store.StoryEventData{
		StoryID:          res.Story.ID,
		FactCount:        len(res.Story.Characters),
		CharacterCount:   res.Deck.Len(),
		IllustratedCount: res.Deck.IllustratedCount(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: record story event: %v\n", err)
	}
}

func (s *Service) storyDir(storyID string) string {
	if s.opts.StoryDir == "" {
		return ""
	}
	return filepath.Join(s.opts.StoryDir, storyID)
}

// Ledger exposes the coin ledger so callers can observe awards and
// read the balance.
func (s *Service) Ledger() *coins.Ledger { return s.ledger }
