package resulthandlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/result/application/parsers"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/httputil"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// MaxUploadBytes caps the size of an uploaded results file.
const MaxUploadBytes = 16 << 20

// ImportQueue enqueues imports for background processing.
type ImportQueue interface {
	EnqueueImport(ctx context.Context, req resultservice.ImportRequest) (int64, error)
}

// ResultHandlers implements the Handlers interface.
type ResultHandlers struct {
	service resultservice.Service
	queue   ImportQueue
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewResultHandlers creates the handlers. With a nil queue imports run
// inside the request.
func NewResultHandlers(service resultservice.Service, queue ImportQueue, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &ResultHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
		tracer:  tracer,
	}
}

type resultList struct {
	EventResults []*resultdb.EventResult `json:"event_results"`
}

type medianResponse struct {
	MedianRoundScore *float64 `json:"median_round_score"`
}

type jobResponse struct {
	JobID int64 `json:"job_id"`
}

func (h *ResultHandlers) List(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.service.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if len(rows) == 0 {
		httputil.WriteError(w, http.StatusNotFound, "No event results found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resultList{EventResults: rows})
}

func (h *ResultHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var in resultservice.ResultInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, row)
}

func (h *ResultHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, row)
}

func (h *ResultHandlers) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in resultservice.ResultInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.service.Replace(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, row)
}

func (h *ResultHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResultHandlers) ListByUsername(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}

func (h *ResultHandlers) ListBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httputil.IDParam(r, "sessionID")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.service.ListBySession(r.Context(), sessionID, page.Skip, page.Limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}

func (h *ResultHandlers) Median(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httputil.OptionalInt64Query(r, "event_session_id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := resultservice.MedianQuery{EventSessionID: sessionID}
	if d := strings.TrimSpace(r.URL.Query().Get("division")); d != "" {
		q.Division = &d
	}

	median, err := h.service.Median(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, medianResponse{MedianRoundScore: median})
}

func (h *ResultHandlers) Import(w http.ResponseWriter, r *http.Request) {
	req, err := readImportForm(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.queue != nil {
		jobID, err := h.queue.EnqueueImport(r.Context(), req)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, jobResponse{JobID: jobID})
		return
	}

	summary, err := h.service.Import(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, summary)
}

func (h *ResultHandlers) Standings(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httputil.IDParam(r, "sessionID")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	standings, err := h.service.Standings(r.Context(), sessionID, strings.TrimSpace(r.URL.Query().Get("division")))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, standings)
}

func (h *ResultHandlers) PointsChart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httputil.IDParam(r, "sessionID")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := h.service.PointsChart(r.Context(), sessionID, chi.URLParam(r, "username"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func readImportForm(r *http.Request) (resultservice.ImportRequest, error) {
	var req resultservice.ImportRequest

	r.Body = http.MaxBytesReader(nil, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		return req, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, errors.New("file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("failed to read upload: %w", err)
	}
	req.Filename = header.Filename
	req.Data = data
	req.Date = strings.TrimSpace(r.FormValue("date"))

	layoutID, err := formInt64(r, "course_layout_id")
	if err != nil {
		return req, err
	}
	if layoutID != nil {
		req.CourseLayoutID = *layoutID
	}
	if req.EventSessionID, err = formInt64(r, "event_session_id"); err != nil {
		return req, err
	}
	if req.LeagueSessionID, err = formInt64(r, "league_session_id"); err != nil {
		return req, err
	}

	if raw := strings.TrimSpace(r.FormValue("max_points")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("invalid max_points: %q", raw)
		}
		req.MaxPoints = &v
	}
	return req, nil
}

func formInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &v, nil
}

func (h *ResultHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, resultservice.ErrValidation), errors.Is(err, parsers.ErrUnsupportedFile):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, resultdb.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, resultdb.ErrDuplicate):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, resultservice.ErrUnknownSession), errors.Is(err, resultdb.ErrUnknownReference):
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Event result request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
