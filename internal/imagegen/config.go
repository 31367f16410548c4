package imagegen

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures the image backend.
type Config struct {
	// Provider is one of "gemini", "openai", or "mock".
	Provider string

	Gemini GeminiConfig
	OpenAI OpenAIConfig

	// Timeout bounds a single generation call.
	Timeout time.Duration
}

// GeminiConfig holds Imagen settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds DALL-E settings.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// DefaultConfig returns the built-in defaults. An API key still has
// to come from the environment.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini:   GeminiConfig{Model: "imagen-3.0-generate-002"},
		OpenAI:   OpenAIConfig{Model: "dall-e-3"},
		Timeout:  60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from FABULA_IMAGE_* variables,
// falling back to the same API keys the text providers use.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("FABULA_IMAGE_PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	} else if p := discoverImageProvider(); p != "" {
		cfg.Provider = p
	}

	cfg.Gemini.APIKey = firstEnv("FABULA_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	cfg.OpenAI.APIKey = firstEnv("FABULA_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.OpenAI.BaseURL = os.Getenv("FABULA_OPENAI_BASE_URL")

	if v := os.Getenv("FABULA_IMAGE_MODEL"); v != "" {
		cfg.Gemini.Model = v
		cfg.OpenAI.Model = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func discoverImageProvider() string {
	switch {
	case firstEnv("FABULA_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY") != "":
		return "gemini"
	case firstEnv("FABULA_OPENAI_API_KEY", "OPENAI_API_KEY") != "":
		return "openai"
	}
	return ""
}

// Validate checks that the selected provider is usable.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("imagegen: gemini selected but no API key set (FABULA_GEMINI_API_KEY or GEMINI_API_KEY)")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("imagegen: openai selected but no API key set (FABULA_OPENAI_API_KEY or OPENAI_API_KEY)")
		}
	case "mock":
	default:
		return fmt.Errorf("imagegen: unknown provider %q", c.Provider)
	}
	return nil
}

// NewProvider constructs the backend named by cfg.Provider.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI), nil
	case "mock":
		return NewMockProvider(), nil
	}
	return nil, fmt.Errorf("imagegen: unknown provider %q", cfg.Provider)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
