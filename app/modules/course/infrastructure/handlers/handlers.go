package coursehandlers

import (
	"errors"
	"log/slog"
	"net/http"

	courseservice "github.com/Black-And-White-Club/frolf-stats/app/modules/course/application"
	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/httputil"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// CourseHandlers implements the Handlers interface.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCourseHandlers creates a new CourseHandlers instance.
func NewCourseHandlers(service courseservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &CourseHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type courseList struct {
	Courses []*coursedb.Course `json:"courses"`
}

func (h *CourseHandlers) ListCourses(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	courses, err := h.service.ListCourses(r.Context(), page.Skip, page.Limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, courseList{Courses: courses})
}

func (h *CourseHandlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in courseservice.CourseInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.CreateCourse(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, course)
}

func (h *CourseHandlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, course)
}

func (h *CourseHandlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in courseservice.CourseInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, course)
}

func (h *CourseHandlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandlers) GetCourseByName(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourseByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, course)
}

func (h *CourseHandlers) ListLayouts(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	layouts, err := h.service.ListLayouts(r.Context(), page.Skip, page.Limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, layouts)
}

func (h *CourseHandlers) CreateLayout(w http.ResponseWriter, r *http.Request) {
	var in courseservice.LayoutInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	layout, err := h.service.CreateLayout(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, layout)
}

func (h *CourseHandlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	layout, err := h.service.GetLayout(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, layout)
}

func (h *CourseHandlers) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteLayout(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandlers) SearchLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.service.SearchLayouts(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, layouts)
}

func (h *CourseHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, courseservice.ErrValidation):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, courseservice.ErrUnknownCourse):
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, coursedb.ErrNotFound), errors.Is(err, coursedb.ErrLayoutNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, coursedb.ErrDuplicateName):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Course request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
