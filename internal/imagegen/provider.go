// Package imagegen generates character illustrations through a
// pluggable image-model provider.
package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Request describes a single illustration to generate.
type Request struct {
	// Prompt is the raw scene description. Providers receive it with
	// the house style applied, see StylePrompt.
	Prompt string

	// AspectRatio such as "1:1". Empty means square.
	AspectRatio string
}

// Image is a generated illustration held in memory.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURI encodes the image as a data: URI suitable for terminals
// and web views alike.
func (img Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// Provider generates one image per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Image, error)
	ModelID() string
}
