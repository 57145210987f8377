package postgres

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/ghuser/pricetrack/migrations"
	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/database"
	"github.com/ghuser/pricetrack/pkg/logger"
	"github.com/ghuser/pricetrack/pkg/migrator"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/kvtest"
)

// Integration tests: skipped unless DATABASE_URL is set.
func TestStore_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()
	log := logger.NewWithWriter(&config.Config{LogLevel: "error"}, os.Stderr)
	db, err := database.NewPool(ctx, url, log)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := migrator.RunMigrations(ctx, db.DB(), migrations.FS); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	kvtest.Run(t, func(t *testing.T) persistence.KeyValue {
		if _, err := db.DB().ExecContext(ctx, "TRUNCATE kv_entries"); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return NewStore(db)
	})

	t.Run("RejectsNonJSON", func(t *testing.T) {
		err := NewStore(db).Set(ctx, "k", []byte("not json"))
		if err == nil || !strings.Contains(err.Error(), "not valid JSON") {
			t.Fatalf("expected JSON validation error, got %v", err)
		}
	})
}
