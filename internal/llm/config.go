package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the text-generation provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single request including retries. Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic settings.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI settings. BaseURL allows OpenAI-compatible
// endpoints (OpenRouter and friends).
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig holds Gemini settings.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig tunes the backoff behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with working defaults for every provider.
func DefaultConfig() Config {
	return Config{
		Provider:  "gemini",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from FABULA_* environment variables,
// falling back to provider auto-discovery from the standard API key
// variables when FABULA_LLM_PROVIDER is unset.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if p := os.Getenv("FABULA_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else if discovered, ok := discoverProvider(); ok {
		cfg.Provider = discovered
	}

	if k := os.Getenv("FABULA_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	} else {
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if m := os.Getenv("FABULA_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("FABULA_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	} else {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if m := os.Getenv("FABULA_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("FABULA_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("FABULA_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	} else {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if m := os.Getenv("FABULA_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg, cfg.Validate()
}

// discoverProvider probes the standard API key variables in priority
// order and returns the first provider whose key is present.
func discoverProvider() (string, bool) {
	if os.Getenv("GEMINI_API_KEY") != "" {
		return "gemini", true
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai", true
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return "anthropic", true
	}
	return "", false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("FABULA_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("FABULA_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("FABULA_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// Test provider, no key.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
