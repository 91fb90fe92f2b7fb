package driven

import (
	"context"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ScenarioStore persists saved calculations.
type ScenarioStore interface {
	// Save stores or updates a scenario.
	Save(ctx context.Context, scenario *domain.Scenario) error

	// Get retrieves a scenario by ID.
	// Returns domain.ErrNotFound if the scenario does not exist.
	Get(ctx context.Context, id string) (*domain.Scenario, error)

	// Delete removes a scenario.
	Delete(ctx context.Context, id string) error

	// List returns all scenarios ordered by creation time, oldest first.
	List(ctx context.Context) ([]domain.Scenario, error)
}
