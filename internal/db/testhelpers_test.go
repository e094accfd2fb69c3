package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/riskzones/internal/testutil"
)

// setupTestDB поднимает PostgreSQL с миграциями и очищает таблицы.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	pool := testutil.SetupTestDB(tb)
	if _, err := pool.Exec(context.Background(),
		`TRUNCATE zone_regions, player_profiles`); err != nil {
		tb.Fatalf("truncating tables: %v", err)
	}

	return pool
}
