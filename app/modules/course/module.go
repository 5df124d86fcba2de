package course

import (
	"context"

	courseservice "github.com/Black-And-White-Club/frolf-stats/app/modules/course/application"
	coursehandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
	courserouter "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/router"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the course module.
type Module struct {
	CourseService courseservice.Service
	Handlers      coursehandlers.Handlers
}

// NewCourseModule wires the course repository, service and handlers, and
// mounts the routes on apiRouter when it is non-nil.
func NewCourseModule(
	ctx context.Context,
	obs observability.Observability,
	m metrics.OperationMetrics,
	apiRouter chi.Router,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "course.NewCourseModule initializing")

	repo := coursedb.NewRepository(db)
	service := courseservice.NewCourseService(repo, logger, m, obs.Tracer, db)
	handlers := coursehandlers.NewCourseHandlers(service, logger, obs.Tracer)

	if apiRouter != nil {
		courserouter.Register(apiRouter, handlers)
	}

	return &Module{
		CourseService: service,
		Handlers:      handlers,
	}
}
