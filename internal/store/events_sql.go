package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	q := `SELECT sequence, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message
		 FROM llm_events WHERE 1=1`
	var args []any

	if opts.After > 0 {
		q += ` AND sequence > ?`
		args = append(args, opts.After)
	}
	if !opts.From.IsZero() {
		q += ` AND timestamp >= ?`
		args = append(args, opts.From)
	}
	q += ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var records []LLMRequestRecord
	for rows.Next() {
		var rec LLMRequestRecord
		var success int
		if err := rows.Scan(
			&rec.Sequence, &rec.Timestamp, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		rec.Success = success != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) AppendStoryEvent(ctx context.Context, data StoryEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO story_events (sequence, story_id, fact_count, character_count, illustrated_count)
		 VALUES (?, ?, ?, ?, ?)`,
		seq, data.StoryID, data.FactCount, data.CharacterCount, data.IllustratedCount,
	)
	if err != nil {
		return fmt.Errorf("save story event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_events (sequence, session_id, action, questions, correct, coins_earned)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		seq, data.SessionID, data.Action, data.Questions, data.Correct, data.CoinsEarned,
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM story_events`,
	).Scan(&stats.StoriesTold)
	if err != nil {
		return nil, fmt.Errorf("count stories: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(questions), 0), COALESCE(SUM(correct), 0)
		 FROM quiz_events WHERE action = 'end'`,
	).Scan(&stats.QuizzesTaken, &stats.QuestionsTotal, &stats.CorrectTotal)
	if err != nil {
		return nil, fmt.Errorf("aggregate quizzes: %w", err)
	}

	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
