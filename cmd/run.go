package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabula-app/fabula/internal/app"
	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/fable"
	"github.com/fabula-app/fabula/internal/imagegen"
	"github.com/fabula-app/fabula/internal/llm"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/story"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	events := st.EventRepo()

	ledger, err := coins.Load(ctx, st.LedgerRepo())
	if err != nil {
		return fmt.Errorf("load coin ledger: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set an API key (e.g. GEMINI_API_KEY) and try again.")
		return err
	}

	images, err := newImageProvider(ctx)
	if err != nil {
		return err
	}

	service := fable.NewService(
		story.NewGenerator(provider, story.DefaultConfig()),
		images,
		ledger,
		events,
		fable.Options{StoryDir: store.DefaultStoryDir(dbPath)},
	)

	return app.Run(app.Options{
		Service: service,
		Ledger:  ledger,
		Events:  events,
	})
}

// newImageProvider builds the illustration backend, falling back to
// the placeholder provider when no image model is configured.
func newImageProvider(ctx context.Context) (imagegen.Provider, error) {
	cfg, err := imagegen.ConfigFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Image provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Cards will use placeholder art.")
		return imagegen.NewMockProvider(), nil
	}
	return imagegen.NewProvider(ctx, cfg)
}
