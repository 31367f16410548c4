// Package story turns a child's list of facts into a short narrative with
// one personified character per fact.
package story

import "errors"

// ErrNoFacts is returned when the facts input is empty after trimming.
// It is a validation failure, raised before any network call.
var ErrNoFacts = errors.New("no facts provided")

// Character is one personified fact from the narrative response, in the
// order the model returned them.
type Character struct {
	// Fact is the original source fact, carried through verbatim.
	Fact string

	// Name is the generated display name for the character.
	Name string

	// ImagePrompt is the generated instruction for illustrating the
	// character, before the fixed style suffix is applied.
	ImagePrompt string
}

// Story is the structured result of one generation request.
type Story struct {
	// ID identifies this story for event logging and image output paths.
	ID string

	// Narrative is the story text. May be empty if the model chose to
	// return characters only.
	Narrative string

	// Characters is ordered as the model returned them; deck indices are
	// assigned from this order.
	Characters []Character
}
