package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

// Ensure ScenarioStore implements the interface.
var _ driven.ScenarioStore = (*ScenarioStore)(nil)

// ScenarioStore is an in-memory implementation of driven.ScenarioStore.
// Scenarios live for the lifetime of the process.
type ScenarioStore struct {
	mu        sync.RWMutex
	scenarios map[string]domain.Scenario
}

// NewScenarioStore creates a new in-memory scenario store.
func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{
		scenarios: make(map[string]domain.Scenario),
	}
}

// Save stores or updates a scenario.
func (s *ScenarioStore) Save(_ context.Context, scenario *domain.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios[scenario.ID] = cloneScenario(scenario)
	return nil
}

// Get retrieves a scenario by ID.
func (s *ScenarioStore) Get(_ context.Context, id string) (*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scenario, ok := s.scenarios[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneScenario(&scenario)
	return &out, nil
}

// Delete removes a scenario.
func (s *ScenarioStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scenarios, id)
	return nil
}

// List returns all scenarios, oldest first.
func (s *ScenarioStore) List(_ context.Context) ([]domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Scenario, 0, len(s.scenarios))
	for i := range s.scenarios {
		sc := s.scenarios[i]
		result = append(result, cloneScenario(&sc))
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// cloneScenario copies the plan so callers cannot mutate stored state.
// Results are treated as immutable and shared.
func cloneScenario(sc *domain.Scenario) domain.Scenario {
	out := *sc
	out.Plan = append([]domain.PlanItem(nil), sc.Plan...)
	return out
}
