// Package compose implements the authoring screen: enter facts, watch
// the story and its cards appear, then head into the quiz.
package compose

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/fabula-app/fabula/internal/fable"
	"github.com/fabula-app/fabula/internal/quiz"
	"github.com/fabula-app/fabula/internal/router"
	"github.com/fabula-app/fabula/internal/screen"
	quizscreen "github.com/fabula-app/fabula/internal/screens/quiz"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/ui/components"
	"github.com/fabula-app/fabula/internal/ui/layout"
)

// phase tracks what the screen is currently doing.
type phase int

const (
	phaseEditing phase = iota
	phaseGenerating
	phaseStoryShown
)

// ComposeScreen implements screen.Screen for story authoring.
type ComposeScreen struct {
	service *fable.Service
	events  store.EventRepo

	phase   phase
	facts   []string
	input   components.TextInput
	errMsg  string
	spinner int

	result  *fable.StoryResult
	pending int
	failed  map[int]bool
}

var _ screen.Screen = (*ComposeScreen)(nil)
var _ screen.KeyHintProvider = (*ComposeScreen)(nil)

// New creates the compose screen with injected dependencies.
func New(service *fable.Service, events store.EventRepo) *ComposeScreen {
	return &ComposeScreen{
		service: service,
		events:  events,
		input:   newFactInput(),
	}
}

func newFactInput() components.TextInput {
	return components.NewTextInput("Type a fact and press Enter...", 120)
}

func (s *ComposeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ComposeScreen) Title() string {
	return "Storybook"
}

func (s *ComposeScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseGenerating:
		return nil
	case phaseStoryShown:
		hints := []layout.KeyHint{
			{Key: "N", Description: "New story"},
		}
		if s.quizReady() {
			hints = append([]layout.KeyHint{{Key: "Enter", Description: "Start quiz"}}, hints...)
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Add fact"},
		{Key: "Ctrl+S", Description: "Tell the story"},
	}
}

// quizReady reports whether the review quiz can start: every
// illustration has settled and the deck is big enough for
// multiple-choice questions.
func (s *ComposeScreen) quizReady() bool {
	return s.result != nil && s.pending == 0 && s.result.Deck.Len() >= 2
}

func (s *ComposeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case storyReadyMsg:
		return s.handleStoryReady(msg)

	case cardIllustratedMsg:
		return s.handleCardIllustrated(msg)

	case spinnerTickMsg:
		if s.phase == phaseGenerating || s.pending > 0 {
			s.spinner++
			return s, spinnerTick()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseEditing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ComposeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseGenerating:
		return s, nil

	case phaseStoryShown:
		switch key {
		case "enter":
			if s.quizReady() {
				return s.startQuiz()
			}
		case "n", "N":
			s.reset()
			return s, s.input.Init()
		}
		return s, nil
	}

	// Editing phase.
	switch key {
	case "enter":
		fact := strings.TrimSpace(s.input.Value())
		if fact != "" {
			s.facts = append(s.facts, fact)
			s.input = newFactInput()
			return s, s.input.Init()
		}
		// Enter on an empty line also tells the story.
		if len(s.facts) > 0 {
			return s.beginStory()
		}
		return s, nil
	case "ctrl+s":
		if pending := strings.TrimSpace(s.input.Value()); pending != "" {
			s.facts = append(s.facts, pending)
		}
		if len(s.facts) > 0 {
			return s.beginStory()
		}
		return s, nil
	case "backspace":
		// Let an empty backspace remove the last fact.
		if s.input.Value() == "" && len(s.facts) > 0 {
			s.facts = s.facts[:len(s.facts)-1]
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ComposeScreen) beginStory() (screen.Screen, tea.Cmd) {
	s.phase = phaseGenerating
	s.errMsg = ""
	facts := strings.Join(s.facts, "\n")

	gen := func() tea.Msg {
		res, err := s.service.BeginStory(context.Background(), facts)
		return storyReadyMsg{Result: res, Err: err}
	}
	return s, tea.Batch(gen, spinnerTick())
}

func (s *ComposeScreen) handleStoryReady(msg storyReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseEditing
		s.errMsg = "The storyteller is stuck right now. Please try again!"
		return s, s.input.Init()
	}

	s.phase = phaseStoryShown
	s.result = msg.Result
	s.pending = msg.Result.Deck.Len()
	s.failed = make(map[int]bool)

	if s.pending == 0 {
		s.service.RecordStory(context.Background(), s.result)
		return s, nil
	}

	// One illustration command per card; they settle independently.
	cmds := make([]tea.Cmd, 0, s.pending+1)
	for i := range s.pending {
		cmds = append(cmds, s.illustrateCmd(i))
	}
	cmds = append(cmds, spinnerTick())
	return s, tea.Batch(cmds...)
}

func (s *ComposeScreen) illustrateCmd(i int) tea.Cmd {
	d := s.result.Deck
	return func() tea.Msg {
		err := s.service.Illustrate(context.Background(), d, i)
		return cardIllustratedMsg{Index: i, Err: err}
	}
}

func (s *ComposeScreen) handleCardIllustrated(msg cardIllustratedMsg) (screen.Screen, tea.Cmd) {
	if s.result == nil || s.pending == 0 {
		return s, nil
	}
	s.pending--
	if msg.Err != nil {
		s.failed[msg.Index] = true
	}
	if s.pending == 0 {
		s.service.RecordStory(context.Background(), s.result)
	}
	return s, nil
}

func (s *ComposeScreen) startQuiz() (screen.Screen, tea.Cmd) {
	session, err := quiz.New(s.result.Deck, s.service.Ledger())
	if err != nil {
		s.errMsg = "This story is too short for a quiz. Add more facts!"
		return s, nil
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(session, s.service.Ledger(), s.events),
		}
	}
}

func (s *ComposeScreen) reset() {
	s.phase = phaseEditing
	s.facts = nil
	s.input = newFactInput()
	s.errMsg = ""
	s.result = nil
	s.pending = 0
	s.failed = nil
}

// spinnerTick animates the loading indicator.
func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
