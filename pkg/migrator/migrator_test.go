package migrator

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/pricetrack/migrations"
)

// Skipped unless DATABASE_URL is set.
func TestRunMigrations_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	if err := RunMigrations(ctx, db, migrations.FS); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(ctx, db, migrations.FS); err != nil {
		t.Fatalf("second run should be a no-op: %v", err)
	}
	v, err := Version(ctx, db)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v < 1 {
		t.Fatalf("expected version >= 1, got %d", v)
	}

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.kv_entries') IS NOT NULL").Scan(&exists); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !exists {
		t.Fatal("expected kv_entries table")
	}
}
