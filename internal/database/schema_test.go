package database_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"tradejournal/internal/database"
	"tradejournal/internal/testutil"
)

func columnExists(t *testing.T, pool *pgxpool.Pool, table, column string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		)
	`, table, column).Scan(&exists)
	if err != nil {
		t.Fatalf("introspect %s.%s: %v", table, column, err)
	}
	return exists
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	pool := testutil.SetupPool(t) // first EnsureSchema runs here
	ctx := context.Background()

	// Second run against a current store must be a clean no-op.
	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("third EnsureSchema: %v", err)
	}
}

func TestEnsureSchemaAddsMissingColumn(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()

	// Simulate an older layout missing one of the additive columns.
	if _, err := pool.Exec(ctx, `ALTER TABLE backtest_setups DROP COLUMN IF EXISTS market`); err != nil {
		t.Fatalf("drop column: %v", err)
	}
	if columnExists(t, pool, "backtest_setups", "market") {
		t.Fatal("column should be absent after drop")
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if !columnExists(t, pool, "backtest_setups", "market") {
		t.Fatal("EnsureSchema did not re-add missing column")
	}
}

func TestEnsureSchemaCreatesBaseTables(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()

	for _, table := range []string{"users", "projects", "trades", "backtest_setups", "backtest_screenshots"} {
		var exists bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.tables WHERE table_name = $1
			)
		`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("introspect %s: %v", table, err)
		}
		if !exists {
			t.Fatalf("table %s missing", table)
		}
	}
}
