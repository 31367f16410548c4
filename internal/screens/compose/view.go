package compose

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/fabula-app/fabula/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *ComposeScreen) View(width, height int) string {
	switch s.phase {
	case phaseGenerating:
		return s.renderGenerating(width)
	case phaseStoryShown:
		return s.renderStory(width)
	}
	return s.renderEditor(width)
}

func (s *ComposeScreen) renderEditor(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("What did you learn today?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Each fact becomes a character in your story."))
	b.WriteString("\n\n")

	for i, fact := range s.facts {
		line := fmt.Sprintf("  %d. %s", i+1, fact)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	if len(s.facts) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("  " + s.input.View())
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
		b.WriteString("\n")
	}

	if len(s.facts) > 0 {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("%d fact(s) ready. Press Enter on an empty line to tell the story.", len(s.facts))))
	}

	return b.String()
}

func (s *ComposeScreen) renderGenerating(width int) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n%s  Writing your story...", frame))
}

func (s *ComposeScreen) renderStory(width int) string {
	var b strings.Builder
	res := s.result

	storyStyle := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text)
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		storyStyle.Render(res.Story.Narrative)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Characters")))
	b.WriteString("\n\n")

	// One card per character, side by side.
	cards := make([]string, 0, res.Deck.Len())
	for i, c := range res.Deck.Cards() {
		art := spinnerFrames[s.spinner%len(spinnerFrames)]
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case c.Illustrated():
			art = "❁"
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		case s.failed[i]:
			art = "✗"
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		body := style.Render(art) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Name)
		cards = append(cards, theme.Card.Align(lipgloss.Center).Width(16).Render(body))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	b.WriteString("\n\n")

	b.WriteString(theme.Coin.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("+%d coins for telling a story!", res.Award.Amount)))
	b.WriteString("\n\n")

	switch {
	case s.pending > 0:
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("Illustrating... %d/%d done", res.Deck.IllustratedCount(), res.Deck.Len())))
	case s.quizReady():
		line := "Press Enter to start the quiz!"
		if n := len(s.failed); n > 0 {
			line = fmt.Sprintf("%d illustration(s) didn't come out. %s", n, line)
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render(line))
	default:
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Add at least two facts next time to unlock the quiz."))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}
