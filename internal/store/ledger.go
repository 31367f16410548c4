package store

import (
	"context"
	"database/sql"
	"fmt"
)

// LedgerRepo persists the coin balance. The balance lives in a single
// fixed row: read at startup, written synchronously on every award.
type LedgerRepo interface {
	// Balance reads the persisted balance. A store that has never been
	// written reports 0.
	Balance(ctx context.Context) (int, error)

	// SetBalance overwrites the persisted balance.
	SetBalance(ctx context.Context, balance int) error
}

type ledgerRepo struct {
	db *sql.DB
}

func (r *ledgerRepo) Balance(ctx context.Context) (int, error) {
	var balance int
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM coin_ledger WHERE id = 1`,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

func (r *ledgerRepo) SetBalance(ctx context.Context, balance int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coin_ledger (id, balance) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET balance = excluded.balance`,
		balance,
	)
	if err != nil {
		return fmt.Errorf("write balance: %w", err)
	}
	return nil
}
