package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
	"github.com/custodia-labs/netreach/internal/logger"
)

// Ensure ScenarioService implements the interface.
var _ driving.ScenarioService = (*ScenarioService)(nil)

// ScenarioService manages saved calculations.
type ScenarioService struct {
	store driven.ScenarioStore
	now   func() time.Time
}

// NewScenarioService creates a new scenario service.
func NewScenarioService(store driven.ScenarioStore) *ScenarioService {
	return &ScenarioService{
		store: store,
		now:   time.Now,
	}
}

// Save stores a calculation under a name and returns the new scenario.
// An empty name defaults to "Scenario <date>".
func (s *ScenarioService) Save(
	ctx context.Context, name string, req domain.CalculationRequest, result *domain.CalculationResult,
) (*domain.Scenario, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: result is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Scenario " + now.Format("2006-01-02 15:04")
	}

	scenario := &domain.Scenario{
		ID:             uuid.New().String(),
		Name:           name,
		TargetAudience: req.TargetAudience,
		City:           req.City,
		Plan:           append([]domain.PlanItem(nil), req.Plan...),
		Result:         result,
		CreatedAt:      now,
	}

	if err := s.store.Save(ctx, scenario); err != nil {
		return nil, fmt.Errorf("save scenario: %w", err)
	}
	logger.Debug("Saved scenario %s (%q)", scenario.ID, scenario.Name)
	return scenario, nil
}

// Get retrieves a scenario by ID.
func (s *ScenarioService) Get(ctx context.Context, id string) (*domain.Scenario, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: scenario id is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns all saved scenarios.
func (s *ScenarioService) List(ctx context.Context) ([]domain.Scenario, error) {
	return s.store.List(ctx)
}

// Delete removes a scenario.
func (s *ScenarioService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Compare summarises the given scenarios, or all scenarios when ids is empty.
// Summaries keep the order of ids.
func (s *ScenarioService) Compare(ctx context.Context, ids []string) ([]domain.ScenarioSummary, error) {
	var scenarios []domain.Scenario

	if len(ids) == 0 {
		all, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		scenarios = all
	} else {
		for _, id := range ids {
			sc, err := s.store.Get(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("scenario %s: %w", id, err)
				}
				return nil, err
			}
			scenarios = append(scenarios, *sc)
		}
	}

	summaries := make([]domain.ScenarioSummary, 0, len(scenarios))
	for i := range scenarios {
		summaries = append(summaries, summarise(&scenarios[i]))
	}
	return summaries, nil
}

func summarise(sc *domain.Scenario) domain.ScenarioSummary {
	summary := domain.ScenarioSummary{
		ID:             sc.ID,
		Name:           sc.Name,
		TargetAudience: sc.TargetAudience,
		City:           sc.City,
	}
	if sc.Result != nil {
		summary.FinalReach = sc.Result.FinalReach
		summary.GrossReach = sc.Result.GrossReach
		summary.Confidence = sc.Result.Confidence
		summary.Channels = len(sc.Result.IncrementalData)
	}
	return summary
}
