// Package tui provides an interactive terminal user interface for netreach.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Calculator estimates net reach. Required.
	Calculator driving.CalculatorService

	// Scenario stores calculations. Saving and the scenario list are
	// disabled when nil.
	Scenario driving.ScenarioService

	// Settings supplies the default audience and city.
	Settings driving.SettingsService

	// ReferenceChanges receives a value whenever the reference table on
	// disk changes. Optional.
	ReferenceChanges <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(calculator driving.CalculatorService, scenario driving.ScenarioService) *Ports {
	return &Ports{
		Calculator: calculator,
		Scenario:   scenario,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	return nil
}
