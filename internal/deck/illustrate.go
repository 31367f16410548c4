package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fabula-app/fabula/internal/imagegen"
)

// IllustrateOptions tunes a batch illustration run.
type IllustrateOptions struct {
	// MaxConcurrent caps in-flight image requests. Zero or negative
	// means no cap, every card is requested at once.
	MaxConcurrent int

	// SaveDir, when set, also writes each illustration to
	// SaveDir/card-NN.png and records the path on the card.
	SaveDir string
}

// Result reports the outcome for one card in a batch run.
type Result struct {
	Index int
	Err   error
}

// Illustrate generates the image for a single card and attaches it to
// the deck. A failure leaves the card untouched.
func Illustrate(ctx context.Context, d *Deck, provider imagegen.Provider, i int, saveDir string) error {
	card, err := d.Card(i)
	if err != nil {
		return err
	}

	img, err := provider.Generate(ctx, imagegen.Request{Prompt: card.ImagePrompt})
	if err != nil {
		return fmt.Errorf("deck: illustrate card %d (%s): %w", i, card.Name, err)
	}

	path := ""
	if saveDir != "" {
		if werr := os.MkdirAll(saveDir, 0o755); werr == nil {
			path = filepath.Join(saveDir, fmt.Sprintf("card-%02d.png", i))
			if werr := os.WriteFile(path, img.Data, 0o644); werr != nil {
				// Keep the in-memory image even when the disk write fails.
				path = ""
			}
		}
	}

	return d.SetImage(i, img.DataURI(), path)
}

// IllustrateAll illustrates every card concurrently and waits for all
// of them to settle. One failed card never cancels the others; the
// returned slice has one entry per card, in card order.
func IllustrateAll(ctx context.Context, d *Deck, provider imagegen.Provider, opts IllustrateOptions) []Result {
	n := d.Len()
	results := make([]Result, n)

	var sem chan struct{}
	if opts.MaxConcurrent > 0 {
		sem = make(chan struct{}, opts.MaxConcurrent)
	}

	done := make(chan Result)
	for i := range n {
		go func() {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			done <- Result{Index: i, Err: Illustrate(ctx, d, provider, i, opts.SaveDir)}
		}()
	}

	for range n {
		r := <-done
		results[r.Index] = r
	}
	return results
}

// FailedCount tallies the failures in a batch result.
func FailedCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
