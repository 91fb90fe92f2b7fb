package driving

import (
	"context"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ScenarioService manages saved calculations.
type ScenarioService interface {
	// Save stores a calculation under a name and returns the new scenario.
	Save(ctx context.Context, name string, req domain.CalculationRequest, result *domain.CalculationResult) (*domain.Scenario, error)

	// Get retrieves a scenario by ID.
	Get(ctx context.Context, id string) (*domain.Scenario, error)

	// List returns all saved scenarios.
	List(ctx context.Context) ([]domain.Scenario, error)

	// Delete removes a scenario.
	Delete(ctx context.Context, id string) error

	// Compare summarises the given scenarios, or all scenarios when ids is empty.
	Compare(ctx context.Context, ids []string) ([]domain.ScenarioSummary, error)
}
