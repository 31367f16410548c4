package story

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fabula-app/fabula/internal/llm"
)

// Config tunes narrative generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings. Temperature is
// deliberately high; story variety matters more than determinism here.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.8,
	}
}

// Generator produces stories through an llm.Provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// storyOutput mirrors StorySchema for decoding.
type storyOutput struct {
	Story      string `json:"story"`
	Characters []struct {
		Fact          string `json:"fact"`
		CharacterName string `json:"character_name"`
		ImagePrompt   string `json:"image_prompt"`
	} `json:"characters"`
}

// Generate issues one schema-constrained request for the given facts
// block. Empty input (after trimming) returns ErrNoFacts without touching
// the network. Any transport, parse, or schema failure comes back as a
// single error; there is no partial result.
func (g *Generator) Generate(ctx context.Context, facts string) (*Story, error) {
	if strings.TrimSpace(facts) == "" {
		return nil, ErrNoFacts
	}

	ctx = llm.WithPurpose(ctx, "story")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(facts)},
		},
		Schema:      StorySchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("story generation failed: %w", err)
	}

	var raw storyOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse story response: %w", err)
	}

	s := &Story{
		ID:         uuid.New().String(),
		Narrative:  raw.Story,
		Characters: make([]Character, len(raw.Characters)),
	}
	for i, c := range raw.Characters {
		s.Characters[i] = Character{
			Fact:        c.Fact,
			Name:        c.CharacterName,
			ImagePrompt: c.ImagePrompt,
		}
	}
	return s, nil
}
