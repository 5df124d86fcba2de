package courserouter

import (
	coursehandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the course and course-layout routes on r.
func Register(r chi.Router, h coursehandlers.Handlers) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Post("/", h.CreateCourse)
		r.Get("/id/{id}", h.GetCourse)
		r.Put("/id/{id}", h.UpdateCourse)
		r.Delete("/id/{id}", h.DeleteCourse)
		r.Get("/name/{name}", h.GetCourseByName)
	})

	r.Route("/course-layouts", func(r chi.Router) {
		r.Get("/", h.ListLayouts)
		r.Post("/", h.CreateLayout)
		r.Get("/search", h.SearchLayouts)
		r.Get("/id/{id}", h.GetLayout)
		r.Delete("/id/{id}", h.DeleteLayout)
	})
}
