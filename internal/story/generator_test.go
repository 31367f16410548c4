package story

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabula-app/fabula/internal/llm"
)

const validStoryJSON = `{
	"story": "Once upon a time, three friends went exploring.",
	"characters": [
		{"fact": "Fact A", "character_name": "Abby", "image_prompt": "A cheerful ant with a backpack"},
		{"fact": "Fact B", "character_name": "Bo", "image_prompt": "A round blue bird"},
		{"fact": "Fact C", "character_name": "Cleo", "image_prompt": "A curious cat with glasses"}
	]
}`

func TestGenerate_EmptyFactsRejectedBeforeNetwork(t *testing.T) {
	mock := llm.NewMockProvider()
	g := NewGenerator(mock, DefaultConfig())

	for _, facts := range []string{"", "   ", "\n\t \n"} {
		_, err := g.Generate(context.Background(), facts)
		require.ErrorIs(t, err, ErrNoFacts)
	}

	assert.Equal(t, 0, mock.CallCount(), "validation must happen before any provider call")
}

func TestGenerate_ParsesStructuredResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validStoryJSON)})
	g := NewGenerator(mock, DefaultConfig())

	s, err := g.Generate(context.Background(), "Fact A\nFact B\nFact C")
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Once upon a time, three friends went exploring.", s.Narrative)
	require.Len(t, s.Characters, 3)
	assert.Equal(t, "Fact A", s.Characters[0].Fact)
	assert.Equal(t, "Abby", s.Characters[0].Name)
	assert.Equal(t, "A curious cat with glasses", s.Characters[2].ImagePrompt)
}

func TestGenerate_SendsSchemaConstrainedRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validStoryJSON)})
	g := NewGenerator(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "Fact A")
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, "fact-story", req.Schema.Name)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Fact A")
}

func TestGenerate_ProviderFailureIsSingleError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	g := NewGenerator(mock, DefaultConfig())

	s, err := g.Generate(context.Background(), "Fact A\nFact B")
	require.Error(t, err)
	assert.Nil(t, s, "no partial story on failure")
}

func TestGenerate_MalformedJSONIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"story": 12}`)})
	g := NewGenerator(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "Fact A")
	require.Error(t, err)
}
