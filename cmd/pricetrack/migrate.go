package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ghuser/pricetrack/migrations"
	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/database"
	"github.com/ghuser/pricetrack/pkg/migrator"
)

type migrateCmd struct {
	env *env
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies pending migrations to DATABASE_URL and prints the schema version.
  Only meaningful with STORAGE_DRIVER=postgres.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := c.env.config()
	if err != nil {
		return c.env.fail(err)
	}
	if cfg.StorageDriver != config.DriverPostgres {
		return c.env.usage("storage driver %q has no migrations", cfg.StorageDriver)
	}

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return c.env.fail(err)
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(ctx, db.DB(), migrations.FS); err != nil {
		return c.env.fail(err)
	}
	version, err := migrator.Version(ctx, db.DB())
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.out, "Schema at version %d\n", version)
	return subcommands.ExitSuccess
}
