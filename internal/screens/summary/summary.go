// Package summary shows the quiz result and the updated coin balance.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fabula-app/fabula/internal/router"
	"github.com/fabula-app/fabula/internal/screen"
	"github.com/fabula-app/fabula/internal/ui/layout"
	"github.com/fabula-app/fabula/internal/ui/theme"
)

// SummaryScreen displays the quiz summary.
type SummaryScreen struct {
	line        string
	coinsEarned int
	balance     int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(line string, coinsEarned, balance int) *SummaryScreen {
	return &SummaryScreen{
		line:        line,
		coinsEarned: coinsEarned,
		balance:     balance,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Well Done"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "New story"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(s.line))
	b.WriteString("\n\n")

	if s.coinsEarned > 0 {
		b.WriteString(theme.Coin.Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("+%d coins earned", s.coinsEarned)))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Coin balance: %d", s.balance)))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
		Render("Press Enter to tell another story."))

	return b.String()
}
