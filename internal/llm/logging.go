package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fabula-app/fabula/internal/store"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose labels the context so request events record what the call
// was for ("story", ...).
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label, defaulting to "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// loggingProvider records every request as an event in the local store.
type loggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps a Provider with request-event logging. The provider
// name ("anthropic", "openai", "gemini") goes into the event alongside
// the model.
func WithLogging(p Provider, provider string, events store.EventRepo) Provider {
	return &loggingProvider{inner: p, provider: provider, events: events}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A logging failure must never fail the request itself.
	if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log request event: %v\n", logErr)
	}

	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
