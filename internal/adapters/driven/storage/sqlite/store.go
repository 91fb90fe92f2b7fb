package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/netreach/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

// DatabaseFile is the file name of the scenario database inside the data directory.
const DatabaseFile = "scenarios.db"

// Store is a SQLite-based scenario store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.netreach/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".netreach", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the TUI read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ScenarioStore returns a ScenarioStore interface backed by this store.
func (s *Store) ScenarioStore() driven.ScenarioStore {
	return &scenarioStore{store: s}
}

// migrate runs all pending up migrations in version order and records each.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_scenarios.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, statements string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(statements); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Scenario Store ====================

// scenarioStore implements driven.ScenarioStore.
type scenarioStore struct {
	store *Store
}

var _ driven.ScenarioStore = (*scenarioStore)(nil)

const scenarioColumns = `id, name, target_audience, city, plan, result, created_at`

// Save stores or updates a scenario.
func (s *scenarioStore) Save(ctx context.Context, scenario *domain.Scenario) error {
	planJSON, err := json.Marshal(scenario.Plan)
	if err != nil {
		return fmt.Errorf("marshalling plan: %w", err)
	}
	resultJSON, err := json.Marshal(scenario.Result)
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}

	createdAt := scenario.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	finalReach := 0.0
	if scenario.Result != nil {
		finalReach = scenario.Result.FinalReach
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, target_audience, city, plan, result, final_reach, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_audience = excluded.target_audience,
			city = excluded.city,
			plan = excluded.plan,
			result = excluded.result,
			final_reach = excluded.final_reach
	`, scenario.ID, scenario.Name, scenario.TargetAudience, scenario.City,
		string(planJSON), string(resultJSON), finalReach, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}
	return nil
}

// Get retrieves a scenario by ID.
func (s *scenarioStore) Get(ctx context.Context, id string) (*domain.Scenario, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`, id)

	scenario, err := scanScenario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return scenario, nil
}

// Delete removes a scenario.
func (s *scenarioStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	return nil
}

// List returns all scenarios, oldest first.
func (s *scenarioStore) List(ctx context.Context) ([]domain.Scenario, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario //nolint:prealloc // size unknown from query
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *scenario)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}

	return scenarios, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var scenario domain.Scenario
	var planJSON, resultJSON string
	var createdAt sql.NullTime

	if err := row.Scan(&scenario.ID, &scenario.Name, &scenario.TargetAudience, &scenario.City,
		&planJSON, &resultJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning scenario: %w", err)
	}

	if err := json.Unmarshal([]byte(planJSON), &scenario.Plan); err != nil {
		return nil, fmt.Errorf("unmarshaling plan: %w", err)
	}
	if resultJSON != "" && resultJSON != "null" {
		scenario.Result = &domain.CalculationResult{}
		if err := json.Unmarshal([]byte(resultJSON), scenario.Result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
	}
	if createdAt.Valid {
		scenario.CreatedAt = createdAt.Time.UTC()
	}

	return &scenario, nil
}
