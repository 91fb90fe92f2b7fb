// Package menu provides the start screen of the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/styles"
)

// Item is one entry of the menu.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool
}

// View lists the screens of the application.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "Calculator", Description: "estimate the net reach of a media plan", View: messages.ViewCalculator},
			{Label: "Scenarios", Description: "browse and compare saved plans", View: messages.ViewScenarios},
			{Label: "Help", Description: "keybindings", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(keyStr, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case keymap.Matches(keyStr, v.keymap.Help):
			return v, changeView(messages.ViewHelp)
		case keymap.Matches(keyStr, v.keymap.Quit):
			return v, tea.Quit
		case keyStr == "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, changeView(item.View)
		}
	}

	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("netreach"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Media plan net reach estimator"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		line := "  " + v.styles.Normal.Render(item.Label)
		if i == v.selected {
			line = v.styles.Selected.Render("> " + item.Label)
		}
		if item.Description != "" {
			line += "  " + v.styles.Muted.Render(item.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
