package fable

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/deck"
	"github.com/fabula-app/fabula/internal/imagegen"
	"github.com/fabula-app/fabula/internal/llm"
	"github.com/fabula-app/fabula/internal/quiz"
	"github.com/fabula-app/fabula/internal/story"
)

const twoCharacterStory = `{
	"story": "Two friends had an adventure.",
	"characters": [
		{"fact": "Fact A", "character_name": "Abby", "image_prompt": "A cheerful ant"},
		{"fact": "Fact B", "character_name": "Bo", "image_prompt": "A round blue bird"}
	]
}`

func newTestService(t *testing.T, textMock *llm.MockProvider, imageMock imagegen.Provider) *Service {
	t.Helper()
	g := story.NewGenerator(textMock, story.DefaultConfig())
	return NewService(g, imageMock, coins.NewUnpersisted(), nil, Options{})
}

func TestBeginStory_AwardsCoinsOnce(t *testing.T) {
	textMock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(twoCharacterStory)})
	svc := newTestService(t, textMock, imagegen.NewMockProvider())

	res, err := svc.BeginStory(context.Background(), "Fact A\nFact B")
	require.NoError(t, err)

	assert.Equal(t, coins.StoryReward, res.Award.Amount)
	assert.Equal(t, coins.StoryReward, svc.Ledger().Balance())
	assert.Equal(t, 2, res.Deck.Len())
	assert.Equal(t, 0, res.Deck.IllustratedCount())
}

func TestBeginStory_FailureEarnsNothing(t *testing.T) {
	textMock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("model down")})
	svc := newTestService(t, textMock, imagegen.NewMockProvider())

	_, err := svc.BeginStory(context.Background(), "Fact A")
	require.Error(t, err)
	assert.Equal(t, 0, svc.Ledger().Balance())
}

func TestBuild_FullPipeline(t *testing.T) {
	textMock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(twoCharacterStory)})
	imageMock := imagegen.NewMockProvider()
	svc := newTestService(t, textMock, imageMock)

	res, results, err := svc.Build(context.Background(), "Fact A\nFact B")
	require.NoError(t, err)

	assert.Equal(t, 0, deck.FailedCount(results))
	assert.Equal(t, 2, res.Deck.IllustratedCount())
	assert.Equal(t, coins.StoryReward, svc.Ledger().Balance())
}

func TestBuild_IllustrationFailureDoesNotAbort(t *testing.T) {
	textMock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(twoCharacterStory)})
	imageMock := imagegen.NewMockProvider()
	imageMock.FailNext(errors.New("image model down"))
	svc := newTestService(t, textMock, imageMock)

	res, results, err := svc.Build(context.Background(), "Fact A\nFact B")
	require.NoError(t, err)

	assert.Equal(t, 1, deck.FailedCount(results))
	assert.Equal(t, 1, res.Deck.IllustratedCount())
	// The story reward does not depend on illustrations.
	assert.Equal(t, coins.StoryReward, svc.Ledger().Balance())
}

const threeCharacterStory = `{
	"story": "Three friends had an adventure.",
	"characters": [
		{"fact": "Fact A", "character_name": "Abby", "image_prompt": "A cheerful ant"},
		{"fact": "Fact B", "character_name": "Bo", "image_prompt": "A round blue bird"},
		{"fact": "Fact C", "character_name": "Cleo", "image_prompt": "A curious cat"}
	]
}`

// A failed illustration degrades one card but must not block the quiz
// or the coins a perfect run earns.
func TestBuild_DegradedDeckStillQuizzes(t *testing.T) {
	textMock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(threeCharacterStory)})
	imageMock := imagegen.NewMockProvider()
	imageMock.FailNext(errors.New("image model down"))

	g := story.NewGenerator(textMock, story.DefaultConfig())
	svc := NewService(g, imageMock, coins.NewUnpersisted(), nil, Options{MaxConcurrent: 1})

	res, results, err := svc.Build(context.Background(), "Fact A\nFact B\nFact C")
	require.NoError(t, err)
	require.Equal(t, 3, res.Deck.Len())
	assert.Equal(t, 1, deck.FailedCount(results))
	assert.Equal(t, 2, res.Deck.IllustratedCount())

	session, err := quiz.New(res.Deck, svc.Ledger())
	require.NoError(t, err)
	require.NoError(t, session.Start())

	for range 3 {
		q, err := session.Current()
		require.NoError(t, err)
		ans, err := session.Answer(context.Background(), q.CorrectIndex())
		require.NoError(t, err)
		assert.True(t, ans.Correct)
		require.NoError(t, session.Advance())
	}

	require.Equal(t, quiz.StateComplete, session.State())
	assert.Equal(t, "You scored 3 out of 3!", session.Summary())
	assert.Equal(t, 3*coins.AnswerReward, session.CoinsEarned())
	assert.Equal(t, coins.StoryReward+3*coins.AnswerReward, svc.Ledger().Balance())
}
