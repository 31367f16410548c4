// Package coins implements the reward ledger: a persistent, append-only
// coin balance fed by fixed-size awards.
package coins

import (
	"context"
	"sync"
	"time"

	"github.com/fabula-app/fabula/internal/store"
)

// Award amounts. These are the only two values the ledger ever receives;
// no caller passes arbitrary amounts.
const (
	StoryReward  = 10 // finishing a story generation
	AnswerReward = 5  // a correct quiz answer
)

// Kind identifies what earned an award.
type Kind string

const (
	KindStory  Kind = "story"
	KindAnswer Kind = "answer"
)

// Amount returns the fixed coin value for the kind.
func (k Kind) Amount() int {
	switch k {
	case KindStory:
		return StoryReward
	case KindAnswer:
		return AnswerReward
	default:
		return 0
	}
}

// Award is one reward event, delivered to observers for UI feedback.
type Award struct {
	Kind      Kind
	Amount    int
	Balance   int // balance after the award
	AwardedAt time.Time
}

// Ledger tracks the coin balance. Mutations are additions only; every
// mutation is persisted before it becomes visible in memory, so the
// stored and in-memory balances are always equal.
type Ledger struct {
	mu        sync.Mutex
	balance   int
	repo      store.LedgerRepo
	observers []func(Award)
}

// Load creates a Ledger seeded from the persisted balance. A repo that
// has never been written yields a balance of 0.
func Load(ctx context.Context, repo store.LedgerRepo) (*Ledger, error) {
	balance, err := repo.Balance(ctx)
	if err != nil {
		return nil, err
	}
	return &Ledger{balance: balance, repo: repo}, nil
}

// NewUnpersisted creates a Ledger with no backing store. Awards mutate
// the in-memory balance only. Used by tests and the non-interactive path
// when no database is available.
func NewUnpersisted() *Ledger {
	return &Ledger{}
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Award adds the kind's fixed amount, persists the new balance before
// returning, and notifies observers. On a persistence failure the
// in-memory balance is left untouched and the error is returned.
func (l *Ledger) Award(ctx context.Context, kind Kind) (Award, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.balance + kind.Amount()
	if l.repo != nil {
		if err := l.repo.SetBalance(ctx, next); err != nil {
			return Award{}, err
		}
	}
	l.balance = next

	award := Award{
		Kind:      kind,
		Amount:    kind.Amount(),
		Balance:   next,
		AwardedAt: time.Now(),
	}
	for _, fn := range l.observers {
		fn(award)
	}
	return award, nil
}

// Observe registers a callback invoked after every successful award.
// Callbacks run on the awarding goroutine while the ledger lock is held;
// keep them short.
func (l *Ledger) Observe(fn func(Award)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}
