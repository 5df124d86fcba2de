package event

import (
	"context"

	eventservice "github.com/Black-And-White-Club/frolf-stats/app/modules/event/application"
	eventhandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/handlers"
	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	eventrouter "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/router"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the event module.
type Module struct {
	EventService eventservice.Service
	// Repository is shared with the result module for session lookups.
	Repository eventdb.Repository
}

// NewEventModule wires disc events, event sessions and league sessions.
func NewEventModule(
	ctx context.Context,
	obs observability.Observability,
	m metrics.OperationMetrics,
	apiRouter chi.Router,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "event.NewEventModule initializing")

	repo := eventdb.NewRepository(db)
	service := eventservice.NewEventService(repo, logger, m, obs.Tracer, db)

	if apiRouter != nil {
		handlers := make(map[eventdb.Kind]eventhandlers.Handlers, len(eventrouter.Prefixes))
		for kind := range eventrouter.Prefixes {
			handlers[kind] = eventhandlers.NewEventHandlers(service, kind, logger, obs.Tracer)
		}
		eventrouter.Register(apiRouter, handlers)
	}

	return &Module{
		EventService: service,
		Repository:   repo,
	}
}
