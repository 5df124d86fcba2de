package result

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-stats/app/eventbus"
	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	resulthandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/handlers"
	resultqueue "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/queue"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	resultrouter "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/router"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/cache"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Dependencies are the collaborators the result module borrows from the
// rest of the app. Bus and Cache may be nil.
type Dependencies struct {
	Sessions  resultservice.SessionChecker
	Cache     cache.Cache
	Bus       eventbus.EventBus
	MaxPoints float64
	// QueueDSN enables the river import queue when non-empty.
	QueueDSN string
}

// Module represents the result module.
type Module struct {
	ResultService resultservice.Service
	Handlers      resulthandlers.Handlers
	QueueService  resultqueue.QueueService
}

// NewResultModule wires repository, service, queue, handlers and event
// subscriptions.
func NewResultModule(
	ctx context.Context,
	obs observability.Observability,
	m metrics.OperationMetrics,
	apiRouter chi.Router,
	db *bun.DB,
	deps Dependencies,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "result.NewResultModule initializing")

	var publisher resultservice.Publisher
	if deps.Bus != nil {
		publisher = deps.Bus
	}

	repo := resultdb.NewRepository(db)
	service := resultservice.NewResultService(repo, deps.Sessions, deps.Cache, publisher, deps.MaxPoints, logger, m, obs.Tracer, db)

	module := &Module{ResultService: service}

	var queue resulthandlers.ImportQueue
	if deps.QueueDSN != "" {
		qs, err := resultqueue.NewService(ctx, db, logger, deps.QueueDSN, m, service)
		if err != nil {
			return nil, fmt.Errorf("failed to create result queue: %w", err)
		}
		module.QueueService = qs
		queue = qs
	}

	module.Handlers = resulthandlers.NewResultHandlers(service, queue, logger, obs.Tracer)

	if deps.Bus != nil {
		if err := resultrouter.Subscribe(deps.Bus, module.Handlers); err != nil {
			return nil, err
		}
	}
	if apiRouter != nil {
		resultrouter.Register(apiRouter, module.Handlers)
	}
	return module, nil
}

// Start starts the import queue, if any.
func (m *Module) Start(ctx context.Context) error {
	if m.QueueService == nil {
		return nil
	}
	return m.QueueService.Start(ctx)
}

// Close stops the import queue, if any.
func (m *Module) Close(ctx context.Context) error {
	if m.QueueService == nil {
		return nil
	}
	return m.QueueService.Stop(ctx)
}
