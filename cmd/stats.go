package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabula-app/fabula/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show story and quiz statistics",
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

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		fmt.Printf("Stories told:     %d\n", stats.StoriesTold)
		fmt.Printf("Quizzes taken:    %d\n", stats.QuizzesTaken)
		fmt.Printf("Questions asked:  %d\n", stats.QuestionsTotal)
		fmt.Printf("Correct answers:  %d\n", stats.CorrectTotal)
		if stats.QuestionsTotal > 0 {
			fmt.Printf("Accuracy:         %.0f%%\n", stats.Accuracy()*100)
		}
		return nil
	},
}
