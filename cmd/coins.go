package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/store"
)

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Show the coin balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ledger, err := coins.Load(cmd.Context(), st.LedgerRepo())
		if err != nil {
			return fmt.Errorf("load coin ledger: %w", err)
		}

		fmt.Printf("Coin balance: %d\n", ledger.Balance())
		return nil
	},
}
