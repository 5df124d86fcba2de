package resultrouter

import (
	"fmt"

	"github.com/Black-And-White-Club/frolf-stats/app/eventbus"
	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	resulthandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the event result and standings routes on r.
func Register(r chi.Router, h resulthandlers.Handlers) {
	r.Route("/event-results", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/median", h.Median)
		r.Post("/import", h.Import)
		r.Get("/username/{username}", h.ListByUsername)
		r.Get("/session/{sessionID}", h.ListBySession)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Replace)
		r.Delete("/{id}", h.Delete)
	})

	r.Route("/standings", func(r chi.Router) {
		r.Get("/{sessionID}", h.Standings)
		r.Get("/{sessionID}/players/{username}/chart.png", h.PointsChart)
	})
}

// Subscribe wires the result event handlers to the bus.
func Subscribe(bus eventbus.EventBus, h resulthandlers.Handlers) error {
	if err := bus.Subscribe("result.cache_invalidation", resultservice.TopicResultsImported, h.HandleResultsImported); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", resultservice.TopicResultsImported, err)
	}
	return nil
}
