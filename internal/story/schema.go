package story

import "github.com/fabula-app/fabula/internal/llm"

// StorySchema constrains the narrative response: one story string plus an
// ordered array of characters, one per fact.
var StorySchema = &llm.Schema{
	Name:        "fact-story",
	Description: "A short story for children with one character per source fact",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story": map[string]any{
				"type":        "string",
				"description": "The full story text, 3-6 short paragraphs, age-appropriate for young children",
			},
			"characters": map[string]any{
				"type":        "array",
				"description": "One character per input fact, in the order the facts were given",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"fact": map[string]any{
							"type":        "string",
							"description": "The source fact this character personifies, copied exactly as given",
						},
						"character_name": map[string]any{
							"type":        "string",
							"description": "A short, fun display name for the character",
						},
						"image_prompt": map[string]any{
							"type":        "string",
							"description": "A visual description of the character suitable for an image generator, one or two sentences",
						},
					},
					"required":             []any{"fact", "character_name", "image_prompt"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"story", "characters"},
		"additionalProperties": false,
	},
}
