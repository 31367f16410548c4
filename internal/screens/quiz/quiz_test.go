package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/deck"
	qz "github.com/fabula-app/fabula/internal/quiz"
	"github.com/fabula-app/fabula/internal/story"
)

// failingLedgerRepo reads fine but refuses every write.
type failingLedgerRepo struct{}

func (failingLedgerRepo) Balance(context.Context) (int, error) { return 0, nil }

func (failingLedgerRepo) SetBalance(context.Context, int) error {
	return errors.New("disk full")
}

func testDeck(t *testing.T) *deck.Deck {
	t.Helper()
	st := &story.Story{ID: "quiz-screen-story", Narrative: "Once."}
	for _, name := range []string{"Abby", "Bo"} {
		st.Characters = append(st.Characters, story.Character{
			Fact:        "Fact " + name,
			Name:        name,
			ImagePrompt: "A drawing of " + name,
		})
	}
	return deck.NewFromStory(st)
}

func TestSubmitAnswer_AwardFailureStillAdvances(t *testing.T) {
	ledger, err := coins.Load(context.Background(), failingLedgerRepo{})
	require.NoError(t, err)

	session, err := qz.New(testDeck(t), ledger)
	require.NoError(t, err)

	s := New(session, ledger, nil)
	require.Nil(t, s.Init())
	require.Empty(t, s.errMsg)

	q, err := session.Current()
	require.NoError(t, err)
	s.mc.ChosenIndex = q.CorrectIndex()

	// The coin write fails, but the session is already in feedback and
	// the advance tick must still be scheduled.
	_, cmd := s.submitAnswer()
	assert.NotNil(t, cmd, "feedback tick must fire even when coins fail to persist")
	assert.Equal(t, qz.StateFeedback, session.State())
	assert.True(t, s.lastResult.Correct)
	assert.Empty(t, s.errMsg)
}

func TestSubmitAnswer_GuardErrorShowsMessage(t *testing.T) {
	session, err := qz.New(testDeck(t), coins.NewUnpersisted())
	require.NoError(t, err)

	s := New(session, coins.NewUnpersisted(), nil)
	require.Nil(t, s.Init())

	q, err := session.Current()
	require.NoError(t, err)
	s.mc.ChosenIndex = q.CorrectIndex()

	_, cmd := s.submitAnswer()
	require.NotNil(t, cmd)

	// Answering again while in feedback is refused without a tick.
	_, cmd = s.submitAnswer()
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.errMsg)
}
