package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Base tables. Dates are zero-padded ISO text so that lexicographic ordering
// is chronological ordering. rr and r_multiple stay opaque text, validated
// only at aggregation time.
var baseTables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS trades (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL,
		date TEXT NOT NULL,
		symbol TEXT NOT NULL DEFAULT '',
		direction TEXT NOT NULL DEFAULT '',
		entry DOUBLE PRECISION NOT NULL DEFAULT 0,
		exit DOUBLE PRECISION NOT NULL DEFAULT 0,
		lot_size DOUBLE PRECISION NOT NULL DEFAULT 0,
		rr TEXT NOT NULL DEFAULT '',
		session_name TEXT NOT NULL DEFAULT '',
		result TEXT NOT NULL DEFAULT '',
		profit DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT '',
		screenshot BYTEA
	)`,
	`CREATE TABLE IF NOT EXISTS backtest_setups (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		date TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		entry_notes TEXT NOT NULL DEFAULT '',
		result TEXT NOT NULL DEFAULT '',
		review_notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS backtest_screenshots (
		id UUID PRIMARY KEY,
		setup_id UUID NOT NULL,
		image BYTEA NOT NULL,
		filename TEXT NOT NULL
	)`,
}

// columnPatch is one additive schema amendment. The list only ever grows;
// columns are never dropped, renamed, or backfilled.
type columnPatch struct {
	table  string
	column string
	ddl    string
}

var columnPatches = []columnPatch{
	{"users", "role", "role TEXT NOT NULL DEFAULT 'user'"},
	{"users", "email", "email TEXT"},
	{"backtest_setups", "session_name", "session_name TEXT NOT NULL DEFAULT ''"},
	{"backtest_setups", "timeframe", "timeframe TEXT NOT NULL DEFAULT ''"},
	{"backtest_setups", "market", "market TEXT NOT NULL DEFAULT ''"},
	{"backtest_setups", "entry_criteria", "entry_criteria TEXT NOT NULL DEFAULT ''"},
	{"backtest_setups", "exit_criteria", "exit_criteria TEXT NOT NULL DEFAULT ''"},
	{"backtest_setups", "r_multiple", "r_multiple TEXT NOT NULL DEFAULT ''"},
	{"backtest_setups", "profit", "profit DOUBLE PRECISION"},
}

// EnsureSchema creates the base tables and additively patches missing
// columns. It is idempotent: re-running against an up-to-date store is a
// no-op. It must run once before any other component touches the store.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("Ensuring database schema...")

	for _, ddl := range baseTables {
		if _, err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create base table: %w", err)
		}
	}

	added := 0
	for _, p := range columnPatches {
		ok, err := addColumn(ctx, db, p)
		if err != nil {
			return err
		}
		if ok {
			added++
		}
	}

	// Email uniqueness arrived after the email column itself; enforced the
	// same additive way.
	if _, err := db.Exec(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_email ON users(email)`); err != nil {
		if isDuplicate(err) {
			log.Printf("WARNING: email index already being created elsewhere: %v", err)
		} else {
			return fmt.Errorf("failed to enforce email uniqueness: %w", err)
		}
	}

	if added > 0 {
		log.Printf("✓ Schema ready (%d column(s) added)", added)
	} else {
		log.Println("✓ Schema ready (already current)")
	}
	return nil
}

// addColumn introspects the physical schema and adds the column when absent.
// A concurrent startup racing the same ALTER is recoverable: log and move on.
func addColumn(ctx context.Context, db *pgxpool.Pool, p columnPatch) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		)
	`, p.table, p.column).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to introspect %s.%s: %w", p.table, p.column, err)
	}
	if exists {
		return false, nil
	}

	_, err = db.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", p.table, p.ddl))
	if err != nil {
		if isDuplicate(err) {
			log.Printf("WARNING: column %s.%s added concurrently, continuing: %v", p.table, p.column, err)
			return false, nil
		}
		return false, fmt.Errorf("failed to add column %s.%s: %w", p.table, p.column, err)
	}

	log.Printf("✓ Added column %s.%s", p.table, p.column)
	return true, nil
}

// isDuplicate matches the SQLSTATEs raised when two startups race the same
// additive change: 42701 duplicate_column, 42P07 duplicate_table (index).
func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42701" || pgErr.Code == "42P07"
}
