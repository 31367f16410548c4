package compose

import (
	"time"

	"github.com/fabula-app/fabula/internal/fable"
)

// storyReadyMsg is sent when narrative generation finishes.
type storyReadyMsg struct {
	Result *fable.StoryResult
	Err    error
}

// cardIllustratedMsg is sent as each card's illustration settles.
type cardIllustratedMsg struct {
	Index int
	Err   error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
