// Package quiz runs a multiple-choice review over an illustrated deck:
// for each card's image, pick which fact it belongs to.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/deck"
)

// ErrDeckTooSmall is returned when a deck cannot produce a
// multiple-choice question.
var ErrDeckTooSmall = errors.New("quiz: need at least two cards")

// State tracks where a session is in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StatePresenting
	StateFeedback
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StatePresenting:
		return "presenting"
	case StateFeedback:
		return "feedback"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option is one answer choice in a question.
type Option struct {
	Fact    string
	Correct bool
}

// Question pairs a card's illustration with a shuffled set of fact
// options, exactly one of which is the card's own fact.
type Question struct {
	Card    deck.Card
	Options []Option

	answered bool
	chosen   int
}

// Answered reports whether the question has been locked by an answer.
func (q *Question) Answered() bool { return q.answered }

// Chosen returns the index of the locked answer, or -1.
func (q *Question) Chosen() int {
	if !q.answered {
		return -1
	}
	return q.chosen
}

// CorrectIndex returns the index of the correct option.
func (q *Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// distractorCount is how many wrong facts accompany the right one
// when the deck is big enough.
const distractorCount = 2

// Session is a single run through a deck's questions. It is not safe
// for concurrent use; drive it from one goroutine.
type Session struct {
	id        string
	state     State
	questions []*Question
	current   int
	score     int
	ledger    *coins.Ledger
	rng       *rand.Rand
}

// New builds a session over the deck, one question per card in card
// order. The ledger may be nil for scoring-only sessions.
func New(d *deck.Deck, ledger *coins.Ledger) (*Session, error) {
	return newWithRand(d, ledger, nil)
}

// newWithRand lets tests pin the shuffle.
func newWithRand(d *deck.Deck, ledger *coins.Ledger, rng *rand.Rand) (*Session, error) {
	cards := d.Cards()
	if len(cards) < 2 {
		return nil, ErrDeckTooSmall
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Session{
		id:     uuid.New().String(),
		state:  StateNotStarted,
		ledger: ledger,
		rng:    rng,
	}
	for i := range cards {
		s.questions = append(s.questions, s.buildQuestion(cards, i))
	}
	return s, nil
}

// buildQuestion draws distractor facts from the other cards and
// shuffles the resulting option set independently per question.
func (s *Session) buildQuestion(cards []deck.Card, idx int) *Question {
	others := make([]int, 0, len(cards)-1)
	for i := range cards {
		if i != idx {
			others = append(others, i)
		}
	}
	s.rng.Shuffle(len(others), func(a, b int) {
		others[a], others[b] = others[b], others[a]
	})

	n := distractorCount
	if len(others) < n {
		n = len(others)
	}

	opts := make([]Option, 0, n+1)
	opts = append(opts, Option{Fact: cards[idx].Fact, Correct: true})
	for _, j := range others[:n] {
		opts = append(opts, Option{Fact: cards[j].Fact})
	}
	s.rng.Shuffle(len(opts), func(a, b int) {
		opts[a], opts[b] = opts[b], opts[a]
	})

	return &Question{Card: cards[idx], Options: opts}
}

// ID identifies the session.
func (s *Session) ID() string { return s.id }

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Len reports the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Score reports the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// CurrentIndex reports the zero-based index of the active question.
func (s *Session) CurrentIndex() int { return s.current }

// Start moves the session to its first question.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return fmt.Errorf("quiz: cannot start from %s", s.state)
	}
	s.state = StatePresenting
	s.current = 0
	return nil
}

// Current returns the active question.
func (s *Session) Current() (*Question, error) {
	if s.state != StatePresenting && s.state != StateFeedback {
		return nil, fmt.Errorf("quiz: no active question in %s", s.state)
	}
	return s.questions[s.current], nil
}

// AnswerResult reports the outcome of one answer.
type AnswerResult struct {
	Correct bool
	Award   coins.Award
}

// Answer locks the active question with the option at index chosen.
// The first answer is final; a correct answer scores a point and, when
// a ledger is attached, earns the per-answer coin reward. The session
// moves to feedback.
func (s *Session) Answer(ctx context.Context, chosen int) (AnswerResult, error) {
	if s.state != StatePresenting {
		return AnswerResult{}, fmt.Errorf("quiz: cannot answer in %s", s.state)
	}
	q := s.questions[s.current]
	if chosen < 0 || chosen >= len(q.Options) {
		return AnswerResult{}, fmt.Errorf("quiz: option %d out of range [0,%d)", chosen, len(q.Options))
	}

	q.answered = true
	q.chosen = chosen
	s.state = StateFeedback

	res := AnswerResult{Correct: q.Options[chosen].Correct}
	if res.Correct {
		s.score++
		if s.ledger != nil {
			award, err := s.ledger.Award(ctx, coins.KindAnswer)
			if err != nil {
				return res, fmt.Errorf("quiz: award answer coins: %w", err)
			}
			res.Award = award
		}
	}
	return res, nil
}

// Advance moves from feedback to the next question, or completes the
// session after the last one.
func (s *Session) Advance() error {
	if s.state != StateFeedback {
		return fmt.Errorf("quiz: cannot advance from %s", s.state)
	}
	if s.current+1 >= len(s.questions) {
		s.state = StateComplete
		return nil
	}
	s.current++
	s.state = StatePresenting
	return nil
}

// Summary describes a finished run in one line.
func (s *Session) Summary() string {
	return fmt.Sprintf("You scored %d out of %d!", s.score, len(s.questions))
}

// CoinsEarned reports coins won during this session.
func (s *Session) CoinsEarned() int {
	return s.score * coins.AnswerReward
}
