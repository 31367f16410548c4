package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/deck"
	"github.com/fabula-app/fabula/internal/fable"
	"github.com/fabula-app/fabula/internal/imagegen"
	"github.com/fabula-app/fabula/internal/llm"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/story"
)

// recordingEvents captures appended events for assertions.
type recordingEvents struct {
	stories []store.StoryEventData
	quizzes []store.QuizEventData
}

func (r *recordingEvents) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return nil
}

func (r *recordingEvents) QueryLLMRequests(context.Context, store.QueryOpts) ([]store.LLMRequestRecord, error) {
	return nil, nil
}

func (r *recordingEvents) AppendStoryEvent(_ context.Context, d store.StoryEventData) error {
	r.stories = append(r.stories, d)
	return nil
}

func (r *recordingEvents) AppendQuizEvent(_ context.Context, d store.QuizEventData) error {
	r.quizzes = append(r.quizzes, d)
	return nil
}

func (r *recordingEvents) Stats(context.Context) (*store.Stats, error) {
	return &store.Stats{}, nil
}

func newComposeScreen(t *testing.T, events store.EventRepo) *ComposeScreen {
	t.Helper()
	g := story.NewGenerator(llm.NewMockProvider(), story.DefaultConfig())
	svc := fable.NewService(g, imagegen.NewMockProvider(), coins.NewUnpersisted(), events, fable.Options{})
	return New(svc, events)
}

func storyResult(n int) *fable.StoryResult {
	st := &story.Story{ID: "story-1", Narrative: "Once upon a time."}
	names := []string{"Abby", "Bo", "Cleo"}
	for i := range n {
		st.Characters = append(st.Characters, story.Character{
			Fact:        "Fact " + names[i],
			Name:        names[i],
			ImagePrompt: "A drawing of " + names[i],
		})
	}
	return &fable.StoryResult{
		Story: st,
		Deck:  deck.NewFromStory(st),
		Award: coins.Award{Kind: coins.KindStory, Amount: coins.StoryReward},
	}
}

func TestQuizUnlocksAfterIllustrationsSettle(t *testing.T) {
	events := &recordingEvents{}
	s := newComposeScreen(t, events)

	s.Update(storyReadyMsg{Result: storyResult(2)})
	assert.False(t, s.quizReady(), "quiz must wait for illustrations")

	s.Update(cardIllustratedMsg{Index: 0})
	assert.False(t, s.quizReady(), "one card still pending")

	// A failed card settles the batch just like a successful one.
	s.Update(cardIllustratedMsg{Index: 1, Err: errors.New("image model down")})
	assert.True(t, s.quizReady())

	require.Len(t, events.stories, 1)
	assert.Equal(t, "story-1", events.stories[0].StoryID)
	assert.Equal(t, 2, events.stories[0].CharacterCount)
}

func TestQuizStaysLockedForSingleCardDeck(t *testing.T) {
	s := newComposeScreen(t, &recordingEvents{})

	s.Update(storyReadyMsg{Result: storyResult(1)})
	s.Update(cardIllustratedMsg{Index: 0})

	assert.False(t, s.quizReady())
}

func TestStoryWithoutCharactersStillRecorded(t *testing.T) {
	events := &recordingEvents{}
	s := newComposeScreen(t, events)

	s.Update(storyReadyMsg{Result: storyResult(0)})

	require.Len(t, events.stories, 1)
	assert.Equal(t, 0, events.stories[0].CharacterCount)
	assert.False(t, s.quizReady())
}

func TestFailedCardRendersDistinctMarker(t *testing.T) {
	s := newComposeScreen(t, &recordingEvents{})

	res := storyResult(2)
	s.Update(storyReadyMsg{Result: res})
	require.NoError(t, res.Deck.SetImage(0, "data:image/png;base64,AAAA", ""))
	s.Update(cardIllustratedMsg{Index: 0})
	s.Update(cardIllustratedMsg{Index: 1, Err: errors.New("image model down")})

	view := s.View(80, 24)
	assert.True(t, strings.Contains(view, "❁"), "illustrated card keeps its art marker")
	assert.True(t, strings.Contains(view, "✗"), "failed card shows a failure marker")
	assert.NotContains(t, view, spinnerFrames[s.spinner%len(spinnerFrames)],
		"settled cards no longer spin")
	assert.Contains(t, view, "1 illustration(s) didn't come out.")
}
