package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates illustrations with the OpenAI images API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a DALL-E-backed provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Image, error) {
	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         StylePrompt(req.Prompt),
		Model:          p.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("imagegen: openai generate: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("imagegen: openai returned no images")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("imagegen: decode openai image: %w", err)
	}
	return &Image{Data: data, MIMEType: "image/png"}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }
