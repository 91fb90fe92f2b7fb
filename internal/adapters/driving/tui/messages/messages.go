// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCalculator is the media plan form and result.
	ViewCalculator
	// ViewScenarios lists saved scenarios.
	ViewScenarios
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCalculator:
		return "calculator"
	case ViewScenarios:
		return "scenarios"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CalculationCompleted carries a calculation result back to the model.
// Seq identifies the submission that produced it.
type CalculationCompleted struct {
	Seq     uint64
	Request domain.CalculationRequest
	Result  *domain.CalculationResult
	Err     error
}

// ScenarioSaved signals a scenario was saved.
type ScenarioSaved struct {
	Scenario *domain.Scenario
	Err      error
}

// ScenariosLoaded carries scenario summaries from the service.
type ScenariosLoaded struct {
	Scenarios []domain.ScenarioSummary
	Err       error
}

// ScenarioDeleted signals a scenario was deleted.
type ScenarioDeleted struct {
	ID  string
	Err error
}

// ReferenceChanged signals the reference table on disk changed.
type ReferenceChanged struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
