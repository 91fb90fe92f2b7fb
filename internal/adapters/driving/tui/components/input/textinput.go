// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	numeric   bool
}

// NewField creates a new labelled input. It starts blurred.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 30

	return &Field{
		label:     label,
		textinput: ti,
		styles:    s,
		width:     30,
	}
}

// NewNumberField creates an input that accepts digits, a decimal separator and a percent sign.
func NewNumberField(s *styles.Styles, label string) *Field {
	f := NewField(s, label, "0")
	f.textinput.CharLimit = 6
	f.textinput.Width = 8
	f.numeric = true
	return f
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && f.numeric && key.Type == tea.KeyRunes && !numericRunes(key.Runes) {
		return f, nil
	}
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.label)
	if f.textinput.Focused() {
		label = f.styles.FocusedLabel.Render(f.label)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, f.textinput.View())
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for label and padding
	inputWidth := width - 16
	if inputWidth < 8 {
		inputWidth = 8
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}

func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != '%' {
			return false
		}
	}
	return true
}
