package imagegen

import "strings"

// styleSuffix keeps every card in the deck visually consistent.
const styleSuffix = "Simple, friendly cartoon illustration for a young child. " +
	"Bright vibrant colors, soft rounded shapes, plain background. " +
	"No text, letters, or numbers anywhere in the image."

// StylePrompt applies the house illustration style to a scene prompt.
func StylePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return styleSuffix
	}
	if !strings.HasSuffix(prompt, ".") && !strings.HasSuffix(prompt, "!") {
		prompt += "."
	}
	return prompt + " " + styleSuffix
}
