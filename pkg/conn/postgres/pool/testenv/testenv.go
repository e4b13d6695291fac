// Package testenv provides database pools for repository tests.
//
// Tests needing a real PostgreSQL read its connection string from the
// TRIALKEEP_TEST_DATABASE environment variable and are skipped when it
// is not set, so the pure-Go test suite stays runnable anywhere.
package testenv

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/trialkeep/trialkeep/pkg/conn/postgres/pool"
)

const EnvDatabase = "TRIALKEEP_TEST_DATABASE"

// PoolBroaker hands out pools over a clean database.
type PoolBroaker interface {
	// GetPool returns a pool. Tables are cleared before returning and
	// again when the test finishes.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

type pg struct {
	pool *pgxpool.Pool
}

// NewPoolBroaker connects to the test database, or skips t when none
// is configured.
func NewPoolBroaker(ctx context.Context, t *testing.T) PoolBroaker {
	t.Helper()

	dsn := os.Getenv(EnvDatabase)
	if dsn == "" {
		t.Skipf("skipped: %s is not set", EnvDatabase)
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("cannot connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	return &pg{pool: pool}
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		ClearTables(ctx, p.pool, t)
	})

	ClearTables(ctx, p.pool, t)
	return kpool.Wrap(p.pool)
}

// ClearTables empties every trialkeep table, leaving the schema in place.
func ClearTables(ctx context.Context, pool *pgxpool.Pool, t *testing.T) {
	t.Helper()

	if _, err := pool.Exec(
		ctx,
		`
		truncate
			"draft_resources",
			"shared_resources",
			"resource_tags",
			"resource_dependencies",
			"resource_locks",
			"queues", "plugins", "plugin_files", "entry_points",
			"experiments", "jobs", "ml_models", "artifacts",
			"resource_snapshots",
			"resources",
			"memberships",
			"group_locks", "groups",
			"user_locks", "users"
		restart identity cascade
		`,
	); err != nil {
		t.Fatalf("failed to clear tables: %v", err)
	}
}
