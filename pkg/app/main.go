package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/pricetrack/migrations"
	"github.com/ghuser/pricetrack/pkg/cache"
	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/database"
	"github.com/ghuser/pricetrack/pkg/events"
	"github.com/ghuser/pricetrack/pkg/logger"
	"github.com/ghuser/pricetrack/pkg/migrator"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service constructor during process initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "price updated", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	Db       *database.Database // nil unless STORAGE_DRIVER=postgres
	Redis    *cache.RedisClient // nil unless STORAGE_DRIVER=redis
	EventBus *events.EventBus
}

// New opens the connections the configured storage driver needs and builds the
// event bus. With the postgres driver, pending migrations are applied first and
// the bus runs on the same database.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Application, error) {
	a := &Application{Config: cfg, Logger: log}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.Db = db
		if err := migrator.RunMigrations(ctx, db.DB(), migrations.FS); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		bus, err := events.NewSQLEventBus(db.DB(), cfg, log)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("setup event bus: %w", err)
		}
		a.EventBus = bus
		log.Info("database connected", "driver", cfg.StorageDriver)
	case config.DriverRedis:
		rc, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.Redis = rc
		log.Info("redis connected")
	}

	if a.EventBus == nil {
		a.EventBus = events.NewEventBus(cfg, log)
	}
	return a, nil
}

// Close releases everything New opened. The event bus closes before the
// connections it may depend on.
func (a *Application) Close() error {
	var errs []error
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.Db != nil {
		errs = append(errs, a.Db.Close())
	}
	return errors.Join(errs...)
}
