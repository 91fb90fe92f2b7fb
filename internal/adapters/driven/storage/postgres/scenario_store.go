package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

// ScenarioStore implements driven.ScenarioStore using PostgreSQL.
type ScenarioStore struct {
	pool *Pool
}

// NewScenarioStore creates a new ScenarioStore.
func NewScenarioStore(pool *Pool) *ScenarioStore {
	return &ScenarioStore{pool: pool}
}

// Compile-time interface check.
var _ driven.ScenarioStore = (*ScenarioStore)(nil)

// Save stores or updates a scenario. The creation time is never changed.
func (s *ScenarioStore) Save(ctx context.Context, sc *domain.Scenario) error {
	planJSON, err := json.Marshal(sc.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	var resultJSON []byte
	finalReach := 0.0
	if sc.Result != nil {
		resultJSON, err = json.Marshal(sc.Result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		finalReach = sc.Result.FinalReach
	}

	createdAt := sc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO scenarios (id, name, target_audience, city, plan, result, final_reach, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			target_audience = EXCLUDED.target_audience,
			city = EXCLUDED.city,
			plan = EXCLUDED.plan,
			result = EXCLUDED.result,
			final_reach = EXCLUDED.final_reach
	`

	_, err = s.pool.Exec(ctx, query,
		sc.ID,
		sc.Name,
		sc.TargetAudience,
		sc.City,
		planJSON,
		resultJSON,
		finalReach,
		createdAt.UTC(),
	)
	if err != nil {
		if isUndefinedTableError(err) {
			return fmt.Errorf("save scenario: schema not migrated: %w", err)
		}
		return fmt.Errorf("save scenario: %w", err)
	}
	return nil
}

// Get retrieves a scenario by ID. Returns domain.ErrNotFound if not exists.
func (s *ScenarioStore) Get(ctx context.Context, id string) (*domain.Scenario, error) {
	query := `
		SELECT id, name, target_audience, city, plan, result, created_at
		FROM scenarios
		WHERE id = $1
	`

	sc, err := scanScenario(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	return sc, nil
}

// Delete removes a scenario.
func (s *ScenarioStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	return nil
}

// List returns all scenarios ordered by creation time, oldest first.
func (s *ScenarioStore) List(ctx context.Context) ([]domain.Scenario, error) {
	query := `
		SELECT id, name, target_audience, city, plan, result, created_at
		FROM scenarios
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []domain.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		out = append(out, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return out, nil
}

func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var sc domain.Scenario
	var planJSON, resultJSON []byte

	if err := row.Scan(&sc.ID, &sc.Name, &sc.TargetAudience, &sc.City, &planJSON, &resultJSON, &sc.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(planJSON, &sc.Plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if len(resultJSON) > 0 {
		sc.Result = &domain.CalculationResult{}
		if err := json.Unmarshal(resultJSON, sc.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	sc.CreatedAt = sc.CreatedAt.UTC()

	return &sc, nil
}
