// Package app assembles the modules into the API process.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/frolf-stats/app/eventbus"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/auth"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/course"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/event"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/result"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/cache"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/config"
	"github.com/Black-And-White-Club/frolf-stats/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

// Modules holds the wired application modules.
type Modules struct {
	Course *course.Module
	Event  *event.Module
	Result *result.Module
	Auth   *auth.Module
}

// App holds the process-wide resources and the modules built on them.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Redis         *redis.Client
	Router        chi.Router
	Modules       Modules

	server        *http.Server
	metricsServer *http.Server
}

// Options controls one-off startup behaviour.
type Options struct {
	// Migrate applies pending migrations before the modules start.
	Migrate bool
	// DB replaces the connection opened from the config. Used by tests.
	DB *bun.DB
}

// NewApp connects to the database, event bus and cache, then wires every
// module onto the API router.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability, opts Options) (*App, error) {
	logger := obs.Logger
	app := &App{Config: cfg, Observability: obs}

	db := opts.DB
	if db == nil {
		var err error
		db, err = bundb.Open(ctx, cfg.Postgres.DSN, logger, bundb.DefaultOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}
	app.DB = db

	if opts.Migrate {
		if err := bundb.MigrateUp(ctx, db, logger); err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	bus, err := newEventBus(cfg, obs)
	if err != nil {
		app.closeResources()
		return nil, err
	}
	app.EventBus = bus

	resultCache, err := app.newCache(ctx)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	m := metrics.NewPrometheus(obs.Registry)
	root, api := newRouter(cfg, obs)
	app.Router = root

	app.Modules.Course = course.NewCourseModule(ctx, obs, m, api, db)
	app.Modules.Event = event.NewEventModule(ctx, obs, m, api, db)

	queueDSN := ""
	if cfg.Queue.Enabled {
		queueDSN = cfg.Postgres.DSN
	}
	app.Modules.Result, err = result.NewResultModule(ctx, obs, m, api, db, result.Dependencies{
		Sessions:  app.Modules.Event.Repository,
		Cache:     resultCache,
		Bus:       bus,
		MaxPoints: cfg.Scoring.MaxPoints,
		QueueDSN:  queueDSN,
	})
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create result module: %w", err)
	}

	app.Modules.Auth, err = auth.NewAuthModule(ctx, obs, m, api, db, auth.Config{
		Secret:            cfg.JWT.Secret,
		AccessTTL:         cfg.JWT.AccessTTL,
		ResetTTL:          cfg.JWT.ResetTTL,
		SecureCookies:     !cfg.IsDevelopment(),
		SuperuserEmail:    cfg.Superuser.Email,
		SuperuserPassword: cfg.Superuser.Password,
	})
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create auth module: %w", err)
	}

	if cfg.Observability.MetricsAddress == "" {
		root.Method(http.MethodGet, "/metrics", metrics.Handler(obs.Registry))
	}

	logger.InfoContext(ctx, "Application initialized",
		attr.String("api_prefix", cfg.HTTP.APIPrefix),
		attr.Bool("queue_enabled", cfg.Queue.Enabled),
		attr.Bool("cache_enabled", app.Redis != nil),
	)
	return app, nil
}

func newEventBus(cfg *config.Config, obs observability.Observability) (eventbus.EventBus, error) {
	if cfg.NATS.URL == "" {
		obs.Logger.Info("NATS_URL not set, using in-process event bus")
		bus, err := eventbus.NewInProcessEventBus(obs.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create event bus: %w", err)
		}
		return bus, nil
	}
	bus, err := eventbus.NewNATSEventBus(cfg.NATS.URL, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	return bus, nil
}

// newCache returns nil when no Redis URL is configured; the result service
// then runs uncached.
func (app *App) newCache(ctx context.Context) (cache.Cache, error) {
	if app.Config.Redis.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(app.Config.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	c, err := cache.NewRedis(&cache.Config{RedisClient: client})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	app.Redis = client
	app.Observability.Logger.InfoContext(ctx, "Redis cache connected")
	return c, nil
}

func (app *App) closeResources() {
	logger := app.Observability.Logger
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", attr.Error(err))
		}
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			logger.Error("Failed to close redis client", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", attr.Error(err))
		}
	}
}
