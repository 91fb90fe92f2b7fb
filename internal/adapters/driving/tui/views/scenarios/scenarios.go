// Package scenarios provides the saved scenario list for the TUI.
package scenarios

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// View lists saved scenarios side by side.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	service driving.ScenarioService
	ctx     context.Context

	items    []domain.ScenarioSummary
	selected int
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new scenario list view.
func NewView(s *styles.Styles, service driving.ScenarioService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.ListHelp())

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the scenario list.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	if v.service == nil {
		return nil
	}
	v.loading = true
	svc := v.service
	ctx := v.ctx
	return func() tea.Msg {
		items, err := svc.Compare(ctx, nil)
		return messages.ScenariosLoaded{Scenarios: items, Err: err}
	}
}

// Update handles messages for the scenario view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.ScenariosLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.items = msg.Scenarios
		v.err = nil
		if v.selected >= len(v.items) {
			v.selected = max(len(v.items)-1, 0)
		}
		v.statusbar.Clear()
		return v, nil

	case messages.ScenarioDeleted:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetState(status.StateResult)
		v.statusbar.SetMessage("Deleted scenario " + msg.ID)
		return v, v.load()

	case messages.ScenarioSaved:
		// Saved from the calculator; keep the list current.
		if msg.Err == nil {
			return v, v.load()
		}

	case messages.ErrorOccurred:
		v.setError(msg.Err)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.load()
	case keymap.Matches(keyStr, v.keymap.Delete):
		return v, v.deleteSelected()
	}
	return v, nil
}

func (v *View) deleteSelected() tea.Cmd {
	sc := v.SelectedScenario()
	if sc == nil || v.service == nil {
		return nil
	}
	id := sc.ID
	svc := v.service
	ctx := v.ctx
	return func() tea.Msg {
		return messages.ScenarioDeleted{ID: id, Err: svc.Delete(ctx, id)}
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the scenario table.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Scenarios"))
	b.WriteString("\n\n")

	switch {
	case v.service == nil:
		b.WriteString(v.styles.Muted.Render("Scenario storage is not configured."))
	case v.loading && len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No scenarios saved. Press ctrl+s in the calculator to save one."))
	default:
		b.WriteString(v.renderTable())
	}

	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderTable() string {
	rows := make([][]string, 0, len(v.items))
	for _, s := range v.items {
		rows = append(rows, []string{
			s.Name,
			s.TargetAudience,
			s.City,
			fmt.Sprintf("%d", s.Channels),
			fmt.Sprintf("%.1f%%", s.FinalReach*100),
			fmt.Sprintf("%.1f%%", s.GrossReach*100),
			s.Confidence.String(),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(v.styles.TableBorder).
		Headers("Scenario", "Audience", "City", "Channels", "Net", "Gross", "Confidence").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return v.styles.TableHeader.Padding(0, 1)
			case row == v.selected:
				return v.styles.Selected.Padding(0, 1)
			default:
				return v.styles.Normal.Padding(0, 1)
			}
		}).
		Render()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Scenarios returns the loaded summaries.
func (v *View) Scenarios() []domain.ScenarioSummary {
	return v.items
}

// Selected returns the index of the highlighted row.
func (v *View) Selected() int {
	return v.selected
}

// SelectedScenario returns the highlighted summary, or nil when the list is empty.
func (v *View) SelectedScenario() *domain.ScenarioSummary {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	return &v.items[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
