package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/deck"
	"github.com/fabula-app/fabula/internal/fable"
	"github.com/fabula-app/fabula/internal/llm"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/story"
)

var tellCmd = &cobra.Command{
	Use:   "tell [facts...]",
	Short: "Generate a story without the TUI",
	Long: "Generate an illustrated story from facts given as arguments " +
		"(one fact per argument) or on stdin (one fact per line).",
	RunE: func(cmd *cobra.Command, args []string) error {
		facts, err := gatherFacts(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ledger, err := coins.Load(ctx, st.LedgerRepo())
		if err != nil {
			return fmt.Errorf("load coin ledger: %w", err)
		}

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		images, err := newImageProvider(ctx)
		if err != nil {
			return err
		}

		service := fable.NewService(
			story.NewGenerator(provider, story.DefaultConfig()),
			images,
			ledger,
			st.EventRepo(),
			fable.Options{
				MaxConcurrent: 4,
				StoryDir:      store.DefaultStoryDir(dbPath),
			},
		)

		fmt.Println("Writing your story...")
		res, results, err := service.Build(ctx, facts)
		if err != nil {
			return fmt.Errorf("generate story: %w", err)
		}

		fmt.Println()
		fmt.Println(res.Story.Narrative)
		fmt.Println()

		for _, c := range res.Deck.Cards() {
			status := "no illustration"
			if c.ImagePath != "" {
				status = c.ImagePath
			} else if c.Illustrated() {
				status = "illustrated"
			}
			fmt.Printf("  %-20s %s\n", c.Name, status)
		}

		if failed := deck.FailedCount(results); failed > 0 {
			fmt.Printf("\n%d illustration(s) failed.\n", failed)
		}
		fmt.Printf("\n+%d coins. Balance: %d\n", res.Award.Amount, ledger.Balance())
		return nil
	},
}

// gatherFacts joins argument facts, or reads stdin when no arguments
// were given.
func gatherFacts(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no facts given: pass them as arguments or pipe them on stdin")
	}

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}
