// Package app wires the screens, router, and frame into the root
// Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fabula-app/fabula/internal/coins"
	"github.com/fabula-app/fabula/internal/fable"
	"github.com/fabula-app/fabula/internal/router"
	"github.com/fabula-app/fabula/internal/screen"
	"github.com/fabula-app/fabula/internal/screens/compose"
	"github.com/fabula-app/fabula/internal/store"
	"github.com/fabula-app/fabula/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Service *fable.Service
	Ledger  *coins.Ledger
	Events  store.EventRepo
}

// coinAwardMsg arrives whenever the ledger grants coins; the header
// balance updates from it rather than by polling the ledger.
type coinAwardMsg struct {
	Award coins.Award
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	balance int
	width   int
	height  int
}

// newAppModel creates a new AppModel with the compose screen at the
// bottom of the stack.
func newAppModel(opts Options) AppModel {
	root := compose.New(opts.Service, opts.Events)
	m := AppModel{
		router: router.New(root),
	}
	if opts.Ledger != nil {
		m.balance = opts.Ledger.Balance()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case coinAwardMsg:
		m.balance = msg.Award.Balance
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.balance, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); hints != nil {
			footerHints = append(hints, footerHints[0])
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if opts.Ledger != nil {
		opts.Ledger.Observe(func(a coins.Award) {
			p.Send(coinAwardMsg{Award: a})
		})
	}
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
