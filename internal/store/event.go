package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// QueryOpts filters and paginates event queries.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	From   time.Time // timestamp >= From
}

// LLMRequestEventData records one text- or image-generation API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a persisted LLM request event.
type LLMRequestRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// StoryEventData records one completed story generation.
type StoryEventData struct {
	StoryID          string
	FactCount        int
	CharacterCount   int
	IllustratedCount int
}

// QuizEventData records a quiz session boundary. Action is "start" or
// "end"; the counters are only meaningful on "end".
type QuizEventData struct {
	SessionID   string
	Action      string
	Questions   int
	Correct     int
	CoinsEarned int
}

// Stats aggregates the event log for the stats command.
type Stats struct {
	StoriesTold    int
	QuizzesTaken   int
	QuestionsTotal int
	CorrectTotal   int
}

// Accuracy returns the overall answer accuracy in [0, 1].
func (s *Stats) Accuracy() float64 {
	if s.QuestionsTotal == 0 {
		return 0
	}
	return float64(s.CorrectTotal) / float64(s.QuestionsTotal)
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
	AppendStoryEvent(ctx context.Context, data StoryEventData) error
	AppendQuizEvent(ctx context.Context, data QuizEventData) error
	Stats(ctx context.Context) (*Stats, error)
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// sequenceCounter assigns a single increasing sequence number to every
// event regardless of type, so the per-table autoincrement IDs never need
// to establish cross-table ordering. The mutex serializes within the
// process; the RETURNING clause makes the increment atomic in the
// database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
