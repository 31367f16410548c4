// Package quiz implements the review screen: one multiple-choice
// question per character card.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fabula-app/fabula/internal/coins"
	qz "github.com/fabula-app/fabula/internal/quiz"
	"github.com/fabula-app/fabula/internal/router"
	"github.com/fabula-app/fabula/internal/screen"
	"github.com/fabula-app/fabula/internal/screens/summary"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/ui/components"
	"github.com/fabula-app/fabula/internal/ui/layout"
	"github.com/fabula-app/fabula/internal/ui/theme"
)

// QuizScreen implements screen.Screen for an active quiz run.
type QuizScreen struct {
	session *qz.Session
	ledger  *coins.Ledger
	events  store.EventRepo

	mc         components.MultiChoice
	lastResult qz.AnswerResult
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen over a prepared session.
func New(session *qz.Session, ledger *coins.Ledger, events store.EventRepo) *QuizScreen {
	return &QuizScreen{
		session: session,
		ledger:  ledger,
		events:  events,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if err := s.session.Start(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.loadQuestion()

	if s.events != nil {
		_ = s.events.AppendQuizEvent(context.Background(), store.QuizEventData{
			SessionID: s.session.ID(),
			Action:    "start",
			Questions: s.session.Len(),
		})
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz Time"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.session.State() == qz.StateFeedback {
		return nil
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
	}
}

// loadQuestion rebuilds the multichoice component for the active
// question.
func (s *QuizScreen) loadQuestion() {
	q, err := s.session.Current()
	if err != nil {
		s.errMsg = err.Error()
		return
	}

	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = o.Fact
	}
	prompt := fmt.Sprintf("Which fact does %s's picture belong to?", q.Card.Name)
	s.mc = components.NewMultiChoice(prompt, opts, q.CorrectIndex())
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case tea.KeyMsg:
		if s.session.State() != qz.StatePresenting {
			return s, nil
		}

		wasSubmitted := s.mc.Submitted
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if !wasSubmitted && s.mc.Submitted {
			return s.submitAnswer()
		}
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	res, err := s.session.Answer(context.Background(), s.mc.ChosenIndex)
	if err != nil && s.session.State() != qz.StateFeedback {
		s.errMsg = err.Error()
		return s, nil
	}
	// A failed coin award still leaves the session in feedback with a
	// valid result; the quiz must keep moving either way.
	s.lastResult = res

	return s, tea.Tick(feedbackDuration, func(time.Time) tea.Msg {
		return feedbackDoneMsg{}
	})
}

func (s *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if err := s.session.Advance(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	if s.session.State() == qz.StateComplete {
		return s.finish()
	}

	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	if s.events != nil {
		_ = s.events.AppendQuizEvent(context.Background(), store.QuizEventData{
			SessionID:   s.session.ID(),
			Action:      "end",
			Questions:   s.session.Len(),
			Correct:     s.session.Score(),
			CoinsEarned: s.session.CoinsEarned(),
		})
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(s.session.Summary(), s.session.CoinsEarned(), s.ledger.Balance()),
		}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\nSomething went wrong: %s", s.errMsg))
	}

	var b strings.Builder

	progress := fmt.Sprintf("Question %d of %d", s.session.CurrentIndex()+1, s.session.Len())
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(progress))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	b.WriteString("\n")

	if s.session.State() == qz.StateFeedback {
		if s.lastResult.Correct {
			line := fmt.Sprintf("Correct! +%d coins", s.lastResult.Award.Amount)
			b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render(line))
		} else {
			b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Not quite!"))
		}
	}

	return b.String()
}
