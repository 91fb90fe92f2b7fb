package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// dsnEnv points the tests at an existing database instead of a container.
const dsnEnv = "NETREACH_TEST_POSTGRES_DSN"

// setupTestDB connects to $NETREACH_TEST_POSTGRES_DSN, or starts a
// PostgreSQL container, and applies migrations. Tests are skipped when
// neither is available.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres tests skipped in short mode")
	}

	ctx := context.Background()
	terminate := func() {}

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)

		container, err := postgres.Run(ctx, "postgres:15-alpine",
			postgres.WithDatabase("netreach"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		require.NoError(t, err, "failed to start postgres container")

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "failed to get connection string")

		terminate = func() {
			if err := container.Terminate(ctx); err != nil {
				t.Logf("failed to terminate container: %v", err)
			}
		}
	}

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")
	require.NoError(t, pool.Migrate(ctx), "failed to migrate")

	_, err = pool.Exec(ctx, "TRUNCATE scenarios")
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		terminate()
	}
	return pool, cleanup
}
