// Package deck holds the character cards produced from a story and
// coordinates illustrating them.
package deck

import (
	"fmt"
	"sync"

	"github.com/fabula-app/fabula/internal/story"
)

// Card is one character in the deck. Fact, Name, and ImagePrompt come
// from the narrative generator; ImageURI and ImagePath are filled in
// as illustrations settle.
type Card struct {
	Fact        string
	Name        string
	ImagePrompt string

	// ImageURI is a data: URI of the rendered illustration, empty
	// until the card has been illustrated.
	ImageURI string

	// ImagePath is set when the illustration was also saved to disk.
	ImagePath string
}

// Illustrated reports whether the card has an image.
func (c Card) Illustrated() bool { return c.ImageURI != "" }

// Deck is an ordered, concurrency-safe collection of cards. Card
// order always matches the order of facts in the source story.
type Deck struct {
	mu      sync.RWMutex
	storyID string
	cards   []Card
}

// NewFromStory builds an unilluminated deck from a story's characters,
// preserving their order.
func NewFromStory(s *story.Story) *Deck {
	cards := make([]Card, len(s.Characters))
	for i, ch := range s.Characters {
		cards[i] = Card{
			Fact:        ch.Fact,
			Name:        ch.Name,
			ImagePrompt: ch.ImagePrompt,
		}
	}
	return &Deck{storyID: s.ID, cards: cards}
}

// StoryID identifies the story this deck was built from.
func (d *Deck) StoryID() string { return d.storyID }

// Len reports the number of cards.
func (d *Deck) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.cards)
}

// Card returns a copy of the card at index i.
func (d *Deck) Card(i int) (Card, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.cards) {
		return Card{}, fmt.Errorf("deck: index %d out of range [0,%d)", i, len(d.cards))
	}
	return d.cards[i], nil
}

// Cards returns a copy of all cards in order.
func (d *Deck) Cards() []Card {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// SetImage attaches an illustration to the card at index i. The
// card's position in the deck never changes, however late the image
// arrives.
func (d *Deck) SetImage(i int, uri, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.cards) {
		return fmt.Errorf("deck: index %d out of range [0,%d)", i, len(d.cards))
	}
	d.cards[i].ImageURI = uri
	d.cards[i].ImagePath = path
	return nil
}

// IllustratedCount reports how many cards carry an image.
func (d *Deck) IllustratedCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, c := range d.cards {
		if c.Illustrated() {
			n++
		}
	}
	return n
}
