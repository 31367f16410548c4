package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over text-generation backends. Fabula only
// ever needs single-turn, schema-constrained generation: one prompt in,
// one structured JSON document out.
type Provider interface {
	// Generate sends one request and returns the model's output. When the
	// request carries a Schema, the returned Content is JSON that has been
	// validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the model this provider is configured to use.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Fabula sends exactly one user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured
	// output mechanism and validates the response before returning it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0.0, 1.0]. Zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema constraining the model's output.
type Schema struct {
	// Name identifies the schema to the provider (tool name for Anthropic,
	// schema name for OpenAI). Kebab-case.
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the model's output for one request.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON object; without one it is the raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
