package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/views/calculator"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/views/scenarios"
	"github.com/custodia-labs/netreach/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView       *menu.View
	calculatorView *calculator.View
	scenariosView  *scenarios.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	calcView := calculator.NewView(s, ports.Calculator, ports.Scenario)

	defaults := domain.DefaultAppSettings()
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			defaults = *settings
		}
	}
	calcView.SetDefaults(defaults.Calculator.DefaultAudience, defaults.Calculator.DefaultCity)

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         keymap.DefaultKeyMap(),
		menuView:       menu.NewView(s),
		calculatorView: calcView,
		scenariosView:  scenarios.NewView(s, ports.Scenario),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.calculatorView.WithContext(ctx)
	a.scenariosView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("netreach"),
		a.waitForReferenceChange(),
	)
}

// waitForReferenceChange turns the next reference change into a message.
func (a *App) waitForReferenceChange() tea.Cmd {
	changes := a.ports.ReferenceChanges
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.ReferenceChanged{}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCalculator:
			return a, a.calculatorView.Init()
		case messages.ViewScenarios:
			return a, a.scenariosView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// nothing to load
		}
		return a, nil

	case messages.CalculationCompleted:
		a.err = msg.Err
		a.calculatorView, cmd = a.calculatorView.Update(msg)
		return a, cmd

	case messages.ScenarioSaved:
		a.err = msg.Err
		var listCmd tea.Cmd
		a.calculatorView, cmd = a.calculatorView.Update(msg)
		a.scenariosView, listCmd = a.scenariosView.Update(msg)
		return a, tea.Batch(cmd, listCmd)

	case messages.ScenariosLoaded, messages.ScenarioDeleted:
		a.scenariosView, cmd = a.scenariosView.Update(msg)
		a.err = a.scenariosView.Err()
		return a, cmd

	case messages.ReferenceChanged:
		a.calculatorView, _ = a.calculatorView.Update(msg)
		return a, a.waitForReferenceChange()

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCalculator:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
	case messages.ViewScenarios:
		a.scenariosView, cmd = a.scenariosView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && keymap.Matches(key.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewCalculator:
		return a.calculatorView.View()
	case messages.ViewScenarios:
		return a.scenariosView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the keybindings grouped as in the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString("Calculator: enter a reach in percent for each channel of the plan.\n")
	b.WriteString("Channels left empty are not part of the plan.\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.calculatorView.SetDimensions(width, height)
	a.scenariosView.SetDimensions(width, height)
}
