package mcp

import (
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator estimates net reach.
	Calculator driving.CalculatorService

	// Scenario manages saved calculations.
	Scenario driving.ScenarioService

	// Reference inspects the configured reference table.
	Reference driving.ReferenceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	// Scenario and Reference are optional
	return nil
}
