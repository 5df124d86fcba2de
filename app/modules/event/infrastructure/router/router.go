package eventrouter

import (
	eventhandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/handlers"
	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
)

// Prefixes maps each event kind to its URL prefix.
var Prefixes = map[eventdb.Kind]string{
	eventdb.KindDiscEvent:     "/disc-events",
	eventdb.KindEventSession:  "/event-sessions",
	eventdb.KindLeagueSession: "/league-sessions",
}

// Register mounts the CRUD routes for every kind in handlers.
func Register(r chi.Router, handlers map[eventdb.Kind]eventhandlers.Handlers) {
	for kind, h := range handlers {
		prefix, ok := Prefixes[kind]
		if !ok {
			continue
		}
		r.Route(prefix, func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/id/{id}", h.Get)
			r.Put("/id/{id}", h.Update)
			r.Delete("/id/{id}", h.Delete)
		})
	}
}
