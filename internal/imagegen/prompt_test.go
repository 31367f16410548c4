package imagegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStylePrompt(t *testing.T) {
	out := StylePrompt("A cheerful ant with a backpack")
	assert.True(t, strings.HasPrefix(out, "A cheerful ant with a backpack."))
	assert.Contains(t, out, "cartoon")
	assert.Contains(t, out, "No text")
}

func TestStylePrompt_KeepsExistingPunctuation(t *testing.T) {
	out := StylePrompt("A round blue bird!")
	assert.True(t, strings.HasPrefix(out, "A round blue bird! "))
	assert.NotContains(t, out, "bird!.")
}

func TestStylePrompt_EmptyPromptStillStyled(t *testing.T) {
	out := StylePrompt("   ")
	assert.Equal(t, styleSuffix, out)
}

func TestImageDataURI(t *testing.T) {
	img := Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}
	uri := img.DataURI()
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
