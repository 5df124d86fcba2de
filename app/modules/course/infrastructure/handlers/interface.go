package coursehandlers

import "net/http"

// Handlers serves the course and course-layout HTTP routes.
type Handlers interface {
	ListCourses(w http.ResponseWriter, r *http.Request)
	CreateCourse(w http.ResponseWriter, r *http.Request)
	GetCourse(w http.ResponseWriter, r *http.Request)
	UpdateCourse(w http.ResponseWriter, r *http.Request)
	DeleteCourse(w http.ResponseWriter, r *http.Request)
	GetCourseByName(w http.ResponseWriter, r *http.Request)

	ListLayouts(w http.ResponseWriter, r *http.Request)
	CreateLayout(w http.ResponseWriter, r *http.Request)
	GetLayout(w http.ResponseWriter, r *http.Request)
	DeleteLayout(w http.ResponseWriter, r *http.Request)
	SearchLayouts(w http.ResponseWriter, r *http.Request)
}
