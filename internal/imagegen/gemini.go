package imagegen

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider generates illustrations with Google's Imagen models.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates an Imagen-backed provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("imagegen: create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: cfg.Model}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Image, error) {
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = "1:1"
	}

	resp, err := p.client.Models.GenerateImages(ctx, p.model, StylePrompt(req.Prompt), &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspect,
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, fmt.Errorf("imagegen: gemini generate: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("imagegen: gemini returned no images")
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &Image{Data: img.ImageBytes, MIMEType: mime}, nil
}

func (p *GeminiProvider) ModelID() string { return p.model }
