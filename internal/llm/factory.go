package llm

import (
	"context"
	"fmt"

	"github.com/fabula-app/fabula/internal/store"
)

// NewProvider builds the configured provider wrapped with the standard
// middleware stack: caller → retry → logging → backend.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		base = WithLogging(base, cfg.Provider, events)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv reads FABULA_* configuration and builds the provider.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, events)
}
