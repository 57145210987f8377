package services

import (
	"context"
	"fmt"

	"github.com/ghuser/pricetrack/pkg/app"
	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/services/grocery/domain/events"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/file"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/memory"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/postgres"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/redis"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Store   *ItemStore
	Feed    *NotificationFeed // nil when built by NewStore
	Storage persistence.KeyValue
}

// New wires the Item Store to the configured storage driver, subscribes a
// NotificationFeed to the event bus and loads the collection.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	return build(ctx, a, true)
}

// NewStore is New without the NotificationFeed, for one-shot processes
// that must not consume notifications meant for a long-running server.
func NewStore(ctx context.Context, a *app.Application) (*Services, error) {
	return build(ctx, a, false)
}

func build(ctx context.Context, a *app.Application, withFeed bool) (*Services, error) {
	kv, err := OpenStorage(a)
	if err != nil {
		return nil, err
	}
	svcs := &Services{Storage: kv}

	if withFeed {
		svcs.Feed = NewNotificationFeed(a.Config.NotificationFeedSize)
		errCh, err := a.EventBus.Subscribe(ctx, events.TopicNotifications, svcs.Feed.Handle)
		if err != nil {
			return nil, fmt.Errorf("subscribe notification feed: %w", err)
		}
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "notification feed error", "error", err)
			}
		}()
	}

	repo := persistence.NewSnapshotRepository(kv, a.Config.SnapshotKey)
	svcs.Store = NewItemStore(repo, a.Logger,
		WithPublisher(a.EventBus),
		WithCurrency(a.Config.Currency),
	)
	if svcs.Store.Load(ctx) {
		a.Logger.InfoContext(ctx, "seed data adopted", "key", repo.Key())
	}
	return svcs, nil
}

// OpenStorage returns the KeyValue for a.Config.StorageDriver. The redis and
// postgres drivers reuse the connections held by a.
func OpenStorage(a *app.Application) (persistence.KeyValue, error) {
	switch a.Config.StorageDriver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverFile:
		s, err := file.NewStore(a.Config.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return s, nil
	case config.DriverRedis:
		if a.Redis == nil {
			return nil, fmt.Errorf("redis storage: no redis connection")
		}
		return redis.NewStore(a.Redis), nil
	case config.DriverPostgres:
		if a.Db == nil {
			return nil, fmt.Errorf("postgres storage: no database connection")
		}
		return postgres.NewStore(a.Db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.Config.StorageDriver)
	}
}
