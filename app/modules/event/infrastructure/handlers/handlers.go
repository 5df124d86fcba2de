package eventhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	eventservice "github.com/Black-And-White-Club/frolf-stats/app/modules/event/application"
	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/httputil"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// EventHandlers implements Handlers for a single Kind.
type EventHandlers struct {
	service eventservice.Service
	kind    eventdb.Kind
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewEventHandlers creates handlers bound to kind.
func NewEventHandlers(service eventservice.Service, kind eventdb.Kind, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &EventHandlers{
		service: service,
		kind:    kind,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.service.List(r.Context(), h.kind, page.Skip, page.Limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

func (h *EventHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var in eventservice.CreateInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := h.service.Create(r.Context(), h.kind, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ev)
}

func (h *EventHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := h.service.Get(r.Context(), h.kind, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ev)
}

func (h *EventHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in eventservice.UpdateInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := h.service.Update(r.Context(), h.kind, id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ev)
}

func (h *EventHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), h.kind, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, eventservice.ErrValidation):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, eventdb.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, eventdb.ErrDuplicateName):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Event request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("kind", string(h.kind)),
			attr.Error(err),
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
